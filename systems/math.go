// Package systems implements the simulation systems: the agent state
// machine, the strategy subsystem, imitation learning, reproduction, and the
// environment the agents forage in.
package systems

import "math"

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(distanceSq(x1, y1, x2, y2))
}

// normalize returns the unit vector of (x, y), or (0, 0) for a zero vector.
func normalize(x, y float64) (float64, float64) {
	mag := math.Sqrt(x*x + y*y)
	if mag == 0 {
		return 0, 0
	}
	return x / mag, y / mag
}

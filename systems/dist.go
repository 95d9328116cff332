package systems

import "math/rand"

// Probability distribution helpers. Distributions are slices over a closed
// strategy set; every mutation site re-establishes the sum-to-1 invariant.

// randomDist fills d with random values normalized to sum to 1.0. Raw values
// are drawn from (0, 1), so the raw sum is always positive.
func randomDist(rng *rand.Rand, d []float64) {
	for i := range d {
		d[i] = rng.Float64()
	}
	normalizeDist(d)
}

// normalizeDist rescales d to sum to 1.0. A non-positive raw sum falls back
// to the uniform distribution, the least-informative point on the simplex.
func normalizeDist(d []float64) {
	var sum float64
	for _, v := range d {
		sum += v
	}
	if sum <= 0 {
		u := 1.0 / float64(len(d))
		for i := range d {
			d[i] = u
		}
		return
	}
	for i := range d {
		d[i] /= sum
	}
}

// blendDist moves dst toward src: dst[i] = (1-alpha)*dst[i] + alpha*src[i].
// The blend of two simplex points stays on the simplex, so no renormalization
// is needed.
func blendDist(dst, src []float64, alpha float64) {
	for i := range dst {
		dst[i] = (1-alpha)*dst[i] + alpha*src[i]
	}
}

// sampleDist draws an index from d proportionally to its weights.
func sampleDist(rng *rand.Rand, d []float64) int {
	r := rng.Float64()
	var cum float64
	for i, v := range d {
		cum += v
		if r < cum {
			return i
		}
	}
	// Floating error can leave r just past the cumulative sum.
	return len(d) - 1
}

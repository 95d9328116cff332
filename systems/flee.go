package systems

import (
	"math"
	"math/rand"

	"github.com/troop-sim/troop/components"
)

const (
	hideOffset    = 30.0 // hide point distance from obstacle centre
	hideNearRange = 15.0 // within this of the hide point, stop and crouch
)

// ExecFleeing runs the agent's current flee strategy. A threat position is
// acquired from the nearest visible enemy if none is remembered, and
// released once the agent has put twice its view range between them. Each
// strategy counts at most one escape per continuous flee episode; with no
// threat and nothing to do, the strategies leave velocity to decay on its
// own.
func ExecFleeing(a *Agent, env *Environment, peers *Peers, rng *rand.Rand) {
	acquireThreat(a, peers)

	if rng.Float64() < 0.05 {
		a.Beh.CurFlee = components.FleeStrategy(sampleDist(rng, a.Beh.Flee[:]))
	}

	switch a.Beh.CurFlee {
	case components.FleeSpeed:
		fleeSpeed(a)
	case components.FleeHide:
		fleeHide(a, env)
	case components.FleeScatter:
		fleeScatter(a, rng)
	default:
		panic("systems: unmapped flee strategy")
	}

	if a.Mem.HasThreat &&
		distance(a.Pos.X, a.Pos.Y, a.Mem.ThreatX, a.Mem.ThreatY) > a.Stats.ViewRange*2.0 {
		a.Mem.HasThreat = false
	}
}

// acquireThreat records the nearest visible enemy as the threat if none is
// remembered. Ambush foragers keep a slightly wider threat awareness than
// their narrowed foraging view.
func acquireThreat(a *Agent, peers *Peers) {
	if a.Mem.HasThreat {
		return
	}
	radius := a.Stats.ViewRange * 1.5
	if a.Beh.CurForaging == components.ForageAmbush {
		radius *= 1.3
	}
	enemies := enemiesWithin(a, peers, radius)
	if len(enemies) == 0 {
		return
	}
	threat := nearestAgent(a, enemies)
	a.Mem.ThreatX = threat.Pos.X
	a.Mem.ThreatY = threat.Pos.Y
	a.Mem.HasThreat = true
}

// countEscape increments the escapes counter once per flee episode.
func countEscape(a *Agent) {
	if !a.Beh.EscapeCounted {
		a.Cnt.Escapes++
		a.Beh.EscapeCounted = true
	}
}

// fleeSpeed is a straight sprint away from the threat.
func fleeSpeed(a *Agent) {
	if !a.Mem.HasThreat {
		return
	}
	dx, dy := normalize(a.Pos.X-a.Mem.ThreatX, a.Pos.Y-a.Mem.ThreatY)
	a.Vel.X = dx * a.Stats.BaseSpeed * 2.0
	a.Vel.Y = dy * a.Stats.BaseSpeed * 2.0
	a.Vit.Energy -= 0.3
	countEscape(a)
}

// fleeHide runs for the far side of the nearest obstacle and holds still
// once there. With no obstacles there is nowhere to hide.
func fleeHide(a *Agent, env *Environment) {
	obstacles := env.Obstacles()
	if !a.Mem.HasThreat || len(obstacles) == 0 {
		return
	}

	nearest := obstacles[0]
	bestSq := distanceSq(a.Pos.X, a.Pos.Y, nearest.CenterX(), nearest.CenterY())
	for _, o := range obstacles[1:] {
		dSq := distanceSq(a.Pos.X, a.Pos.Y, o.CenterX(), o.CenterY())
		if dSq < bestSq {
			nearest = o
			bestSq = dSq
		}
	}

	cx, cy := nearest.CenterX(), nearest.CenterY()
	dx, dy := normalize(cx-a.Mem.ThreatX, cy-a.Mem.ThreatY)
	hideX := cx + dx*hideOffset
	hideY := cy + dy*hideOffset

	if distance(a.Pos.X, a.Pos.Y, hideX, hideY) < hideNearRange {
		a.Vel.X = 0
		a.Vel.Y = 0
		a.Vit.Energy -= 0.05
	} else {
		a.MoveTowards(hideX, hideY, 1.5)
		a.Vit.Energy -= 0.15
	}
	countEscape(a)
}

// fleeScatter zigzags: on a 30% roll per tick it bolts in a random heading,
// biased away from the threat when one is remembered. On the other ticks it
// does nothing at all, drifting on its decaying velocity.
func fleeScatter(a *Agent, rng *rand.Rand) {
	if rng.Float64() >= 0.3 {
		return
	}
	angle := rng.Float64() * 2 * math.Pi
	dx, dy := math.Cos(angle), math.Sin(angle)
	if a.Mem.HasThreat {
		ex, ey := normalize(a.Pos.X-a.Mem.ThreatX, a.Pos.Y-a.Mem.ThreatY)
		dx, dy = normalize((dx+ex)/2, (dy+ey)/2)
	}
	a.Vel.X = dx * a.Stats.BaseSpeed * 1.5
	a.Vel.Y = dy * a.Stats.BaseSpeed * 1.5
	a.Vit.Energy -= 0.2
	countEscape(a)
}

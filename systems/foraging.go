package systems

import (
	"math/rand"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
)

// ExecForaging runs the agent's current foraging strategy, then attempts to
// eat. The current strategy is re-sampled at a low rate so the behavioral
// profile keeps exploring without thrashing.
func ExecForaging(a *Agent, env *Environment, peers *Peers, rng *rand.Rand) {
	if rng.Float64() < 0.1 {
		a.Beh.CurForaging = components.ForagingStrategy(sampleDist(rng, a.Beh.Foraging[:]))
	}

	switch a.Beh.CurForaging {
	case components.ForageWideView:
		// Wide field of view, slower movement.
		forageSeek(a, env, rng, a.Stats.ViewRange*1.5, 0.7)
	case components.ForageFastMove:
		// Narrow field of view, fast movement.
		forageSeek(a, env, rng, a.Stats.ViewRange*0.6, 1.5)
	case components.ForageRandomWalk:
		forageRandomWalk(a, env, rng)
	case components.ForageAmbush:
		forageAmbush(a, env)
	default:
		panic("systems: unmapped foraging strategy")
	}

	Eat(a, env)
}

// forageSeek heads for the nearest edible resource in view, or wanders.
func forageSeek(a *Agent, env *Environment, rng *rand.Rand, viewRange, speedMult float64) {
	if target := nearestEdible(a, env, viewRange); target != nil {
		a.Mem.TargetResource = target.ID
		a.MoveTowards(target.X, target.Y, speedMult)
		return
	}
	a.Mem.TargetResource = 0
	a.Wander(rng, speedMult)
}

// forageRandomWalk mostly wanders, occasionally darting at a random edible
// resource in view.
func forageRandomWalk(a *Agent, env *Environment, rng *rand.Rand) {
	if rng.Float64() < 0.3 {
		edible := edibleWithin(a, env, a.Stats.ViewRange)
		if len(edible) > 0 {
			target := edible[rng.Intn(len(edible))]
			a.Mem.TargetResource = target.ID
			a.MoveTowards(target.X, target.Y, 1.0)
			return
		}
	}
	a.Mem.TargetResource = 0
	a.Wander(rng, 1.0)
}

// forageAmbush holds position unless food is already very close.
func forageAmbush(a *Agent, env *Environment) {
	if target := nearestEdible(a, env, a.Stats.ViewRange*0.4); target != nil {
		a.Mem.TargetResource = target.ID
		a.MoveTowards(target.X, target.Y, 0.5)
	}
}

// Eat consumes the nearest edible resource within eating range: energy and
// hp are restored proportionally to its nutrition (capped at the species
// maxima), the resource is removed, and the meals counter increments.
func Eat(a *Agent, env *Environment) {
	cfg := config.Cfg()
	target := nearestEdible(a, env, cfg.Resources.EatRange)
	if target == nil {
		return
	}

	a.Vit.Energy = min(a.Vit.MaxEnergy, a.Vit.Energy+target.Amount)
	a.Vit.HP = min(a.Vit.MaxHP, a.Vit.HP+target.Amount*0.5)
	env.RemoveResource(target)
	a.Mem.TargetResource = 0
	a.Cnt.Meals++
}

// edibleWithin returns the resources in range that match the agent's diet.
func edibleWithin(a *Agent, env *Environment, radius float64) []*Resource {
	resources := env.ResourcesWithin(a.Pos.X, a.Pos.Y, radius)
	edible := resources[:0]
	for _, r := range resources {
		if a.Stats.Diet.Has(r.Kind) {
			edible = append(edible, r)
		}
	}
	return edible
}

// nearestEdible returns the closest diet-matching resource in range, or nil.
func nearestEdible(a *Agent, env *Environment, radius float64) *Resource {
	var best *Resource
	var bestSq float64
	for _, r := range env.ResourcesWithin(a.Pos.X, a.Pos.Y, radius) {
		if !a.Stats.Diet.Has(r.Kind) {
			continue
		}
		dSq := distanceSq(a.Pos.X, a.Pos.Y, r.X, r.Y)
		if best == nil || dSq < bestSq {
			best = r
			bestSq = dSq
		}
	}
	return best
}

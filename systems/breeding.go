package systems

import (
	"math/rand"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
)

// Offspring is a pending birth: everything the driver needs to spawn a new
// agent after the reproduction pass completes.
type Offspring struct {
	Species         uint8
	X, Y            float64
	Foraging        [components.NumForaging]float64
	Combat          [components.NumCombat]float64
	Flee            [components.NumFlee]float64
	HungerThreshold float64
}

// Behavior builds the newborn's behavior profile from the inherited
// distributions, with current strategies sampled fresh.
func (o Offspring) Behavior(rng *rand.Rand) components.Behavior {
	b := components.Behavior{
		State:           components.StateIdle,
		Foraging:        o.Foraging,
		Combat:          o.Combat,
		Flee:            o.Flee,
		HungerThreshold: o.HungerThreshold,
	}
	pickCurrent(&b, rng)
	return b
}

// CanReproduce reports whether the agent is fertile this pass: alive, inside
// the fertile age window, above the vitality floor, and off reproduction
// cooldown.
func CanReproduce(a *Agent) bool {
	cfg := config.Cfg().Reproduction
	if !a.Alive() {
		return false
	}
	if a.Vit.Age <= cfg.MinAge || a.Vit.Age >= cfg.MinAge+cfg.FertileWindow {
		return false
	}
	if a.Vit.Energy <= a.Vit.MaxEnergy*cfg.VitalityFloor || a.Vit.HP <= a.Vit.MaxHP*cfg.VitalityFloor {
		return false
	}
	return a.Vit.SinceRepro > a.Stats.ReproductionCooldown
}

// RunReproductionPass pairs fertile same-species agents within mating range,
// in snapshot order, each agent mating at most once per pass. Births are
// returned for the driver to spawn after the pass.
func RunReproductionPass(peers *Peers, rng *rand.Rand) []Offspring {
	var births []Offspring
	mated := make(map[uint32]bool)
	for i := range peers.Agents {
		a := &peers.Agents[i]
		if mated[a.ID] || !CanReproduce(a) {
			continue
		}
		mate := findMate(a, peers, mated, rng)
		if mate == nil {
			continue
		}
		mated[a.ID] = true
		mated[mate.ID] = true
		births = append(births, reproduce(a, mate, rng))
	}
	return births
}

// findMate picks a uniform random fertile same-species partner within
// mating range that has not mated this pass.
func findMate(a *Agent, peers *Peers, mated map[uint32]bool, rng *rand.Rand) *Agent {
	cfg := config.Cfg().Reproduction
	rSq := cfg.MatingRange * cfg.MatingRange
	var candidates []*Agent
	for i := range peers.Agents {
		o := &peers.Agents[i]
		if o.ID == a.ID || mated[o.ID] || o.Species != a.Species || !CanReproduce(o) {
			continue
		}
		if distanceSq(a.Pos.X, a.Pos.Y, o.Pos.X, o.Pos.Y) < rSq {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.Intn(len(candidates))]
}

// reproduce produces one offspring from two parents and applies the parents'
// mating costs. Strategy distributions are inherited as the parents' average
// plus a uniform mutation, floored at zero and renormalized; an all-zero
// result falls back to uniform.
func reproduce(a, b *Agent, rng *rand.Rand) Offspring {
	cfg := config.Cfg()
	repro := cfg.Reproduction

	var child Offspring
	child.Species = a.Species
	inset := cfg.World.EdgeInset
	child.X = clampFloat((a.Pos.X+b.Pos.X)/2+jitter(rng, repro.SpawnJitter), inset, cfg.World.Width-inset)
	child.Y = clampFloat((a.Pos.Y+b.Pos.Y)/2+jitter(rng, repro.SpawnJitter), inset, cfg.World.Height-inset)

	inheritDist(child.Foraging[:], a.Beh.Foraging[:], b.Beh.Foraging[:], repro.MutationRate, rng)
	inheritDist(child.Combat[:], a.Beh.Combat[:], b.Beh.Combat[:], repro.MutationRate, rng)
	inheritDist(child.Flee[:], a.Beh.Flee[:], b.Beh.Flee[:], repro.MutationRate, rng)

	avgHunger := (a.Beh.HungerThreshold + b.Beh.HungerThreshold) / 2
	child.HungerThreshold = clampFloat(avgHunger+jitter(rng, 0.1), 0.2, 0.8)

	for _, parent := range []*Agent{a, b} {
		parent.Vit.Energy -= parent.Vit.MaxEnergy * repro.EnergyCost
		parent.Vit.HP -= parent.Vit.MaxHP * repro.HPCost
		parent.Vit.SinceRepro = 0
		parent.Cnt.Offspring++
	}
	return child
}

// inheritDist fills dst with the mutated average of the two parent
// distributions.
func inheritDist(dst, a, b []float64, mutation float64, rng *rand.Rand) {
	for i := range dst {
		v := (a[i]+b[i])/2 + jitter(rng, mutation)
		if v < 0 {
			v = 0
		}
		dst[i] = v
	}
	normalizeDist(dst)
}

// jitter draws uniformly from [-scale, scale].
func jitter(rng *rand.Rand, scale float64) float64 {
	return (rng.Float64()*2 - 1) * scale
}

package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
)

// Agent is a per-tick view of one simulated primate: the entity handle, its
// species stat block, and pointers into the live component storage. Strategy
// execution mutates agents (including other agents) through these pointers,
// so changes are immediately visible to agents updated later in the same
// tick. Handles are rebuilt from the world every tick and never retained.
type Agent struct {
	Entity  ecs.Entity
	ID      uint32
	Species uint8
	Stats   *SpeciesStats

	Pos *components.Position
	Vel *components.Velocity
	Vit *components.Vitals
	Beh *components.Behavior
	Mem *components.Memory
	Cnt *components.Counters
}

// Alive reports whether the agent has not entered the terminal dead state.
func (a *Agent) Alive() bool {
	return a.Beh.State != components.StateDead
}

// Fitness is hp/max_hp + energy/max_energy, in [0, 2] for healthy vitals.
// It drives both imitation learning and the fight-readiness check.
func (a *Agent) Fitness() float64 {
	return a.Vit.HP/a.Vit.MaxHP + a.Vit.Energy/a.Vit.MaxEnergy
}

// MoveTowards sets velocity toward the target at base speed scaled by mult.
func (a *Agent) MoveTowards(x, y, mult float64) {
	dx, dy := normalize(x-a.Pos.X, y-a.Pos.Y)
	speed := a.Stats.BaseSpeed * mult
	a.Vel.X = dx * speed
	a.Vel.Y = dy * speed
}

// Wander drifts toward a random target, re-picked occasionally, at half the
// given speed multiplier.
func (a *Agent) Wander(rng *rand.Rand, mult float64) {
	if !a.Mem.HasWander || rng.Float64() < 0.05 {
		w := config.Cfg().World
		a.Mem.WanderX = rng.Float64() * w.Width
		a.Mem.WanderY = rng.Float64() * w.Height
		a.Mem.HasWander = true
	}
	a.MoveTowards(a.Mem.WanderX, a.Mem.WanderY, mult*0.5)
}

// NewBehavior returns a freshly randomized behavior profile for a founding
// agent: random strategy distributions, a hunger threshold drawn uniformly
// from [0.2, 0.8], and current strategies sampled from the fresh
// distributions.
func NewBehavior(rng *rand.Rand) components.Behavior {
	var b components.Behavior
	randomDist(rng, b.Foraging[:])
	randomDist(rng, b.Combat[:])
	randomDist(rng, b.Flee[:])
	b.HungerThreshold = 0.2 + rng.Float64()*0.6
	b.State = components.StateIdle
	pickCurrent(&b, rng)
	return b
}

func pickCurrent(b *components.Behavior, rng *rand.Rand) {
	b.CurForaging = components.ForagingStrategy(sampleDist(rng, b.Foraging[:]))
	b.CurCombat = components.CombatStrategy(sampleDist(rng, b.Combat[:]))
	b.CurFlee = components.FleeStrategy(sampleDist(rng, b.Flee[:]))
}

// Peers is the live-agent snapshot for one tick: every agent that was alive
// when the tick started, in deterministic iteration order, plus an id index
// for resolving non-owning back-references.
type Peers struct {
	Agents []Agent
	byID   map[uint32]int
}

// NewPeers builds the snapshot and its id index.
func NewPeers(agents []Agent) *Peers {
	p := &Peers{
		Agents: agents,
		byID:   make(map[uint32]int, len(agents)),
	}
	for i := range agents {
		p.byID[agents[i].ID] = i
	}
	return p
}

// ByID resolves an agent id against the snapshot. Returns nil for the nil
// id, an unknown id, or an agent that has died since the reference was
// recorded.
func (p *Peers) ByID(id uint32) *Agent {
	if id == components.NoAgent {
		return nil
	}
	i, ok := p.byID[id]
	if !ok {
		return nil
	}
	a := &p.Agents[i]
	if !a.Alive() {
		return nil
	}
	return a
}

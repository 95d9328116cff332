package systems

import (
	"math/rand"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
)

// Advance runs one tick for a single agent: metabolism, death checks, state
// transitions, strategy execution, and movement integration, in that order.
// Agents already marked dead are skipped. Death is only ever decided here,
// at the start of the agent's own update, so an agent knocked below zero hp
// mid-tick stays visible to the rest of the tick.
func Advance(a *Agent, env *Environment, peers *Peers, rng *rand.Rand) {
	if !a.Alive() {
		return
	}
	cfg := config.Cfg()
	sim := cfg.Simulation

	a.Vit.Age += sim.AgeIncrement
	a.Vit.SinceRepro += sim.AgeIncrement
	a.Vit.Energy -= sim.MetabolismRate
	if a.Vit.Energy < a.Vit.MaxEnergy*sim.StarvationThreshold {
		a.Vit.HP -= sim.StarvationDamage
	}

	switch {
	case a.Vit.HP <= 0:
		die(a, components.CauseHP)
		return
	case a.Vit.Energy <= 0:
		die(a, components.CauseEnergy)
		return
	case a.Vit.Age >= a.Stats.MaxAge:
		die(a, components.CauseOldAge)
		return
	}

	// Priority transitions, re-evaluated from scratch every tick: survival
	// beats aggression beats hunger.
	switch {
	case a.Vit.HP < a.Vit.MaxHP*sim.LowHPFleeRatio:
		a.Beh.State = components.StateFleeing
	case shouldFight(a, peers, sim):
		a.Beh.State = components.StateFighting
	case a.Vit.Energy < a.Vit.MaxEnergy*a.Beh.HungerThreshold:
		a.Beh.State = components.StateForaging
	default:
		a.Beh.State = components.StateIdle
	}

	switch a.Beh.State {
	case components.StateForaging:
		ExecForaging(a, env, peers, rng)
	case components.StateFighting:
		ExecCombat(a, env, peers, rng)
	case components.StateFleeing:
		ExecFleeing(a, env, peers, rng)
	default:
		a.Wander(rng, 0.3)
		a.Beh.EscapeCounted = false
	}

	integrate(a, cfg)
}

// shouldFight reports whether the agent should pick a fight: enough energy,
// a live enemy in view, and a clear fitness edge over the nearest one.
func shouldFight(a *Agent, peers *Peers, sim config.SimulationConfig) bool {
	if a.Vit.Energy < a.Vit.MaxEnergy*sim.FightEnergyRatio {
		return false
	}
	enemies := enemiesWithin(a, peers, a.Stats.ViewRange)
	if len(enemies) == 0 {
		return false
	}
	nearest := nearestAgent(a, enemies)
	return a.Fitness() > nearest.Fitness()*sim.FightFitnessMargin
}

// integrate applies velocity, clamps to the world, and decays velocity.
func integrate(a *Agent, cfg *config.Config) {
	a.Pos.X = clampFloat(a.Pos.X+a.Vel.X, 0, cfg.World.Width)
	a.Pos.Y = clampFloat(a.Pos.Y+a.Vel.Y, 0, cfg.World.Height)
	a.Vel.X *= cfg.Simulation.VelocityDecay
	a.Vel.Y *= cfg.Simulation.VelocityDecay
}

func die(a *Agent, cause components.DeathCause) {
	a.Beh.State = components.StateDead
	a.Beh.Cause = cause
	a.Vel.X = 0
	a.Vel.Y = 0
}

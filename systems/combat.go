package systems

import (
	"math/rand"

	"github.com/troop-sim/troop/components"
)

// Combat tuning. Targets hit by Aggressive or Group attacks are forced into
// fleeing and remember their attacker, so Defensive counters have someone to
// answer.
const (
	combatEngageRange = 100.0 // enemy search radius
	combatMeleeRange  = 20.0  // beyond this, approach instead of striking
	allyRange         = 150.0 // ally search radius for Group
)

// ExecCombat runs the agent's current combat strategy against the live
// snapshot. Damage and counter-damage are applied in place and are visible
// to agents updated later in the same tick.
func ExecCombat(a *Agent, env *Environment, peers *Peers, rng *rand.Rand) {
	if rng.Float64() < 0.05 {
		a.Beh.CurCombat = components.CombatStrategy(sampleDist(rng, a.Beh.Combat[:]))
	}

	switch a.Beh.CurCombat {
	case components.CombatAggressive:
		combatAggressive(a, peers)
	case components.CombatDefensive:
		combatDefensive(a, peers)
	case components.CombatGroup:
		combatGroup(a, peers)
	default:
		panic("systems: unmapped combat strategy")
	}
}

// combatAggressive targets the weakest nearby enemy: high damage, high risk.
func combatAggressive(a *Agent, peers *Peers) {
	enemies := enemiesWithin(a, peers, combatEngageRange)
	if len(enemies) == 0 {
		return
	}

	// Weakest enemy by current hp.
	target := enemies[0]
	for _, e := range enemies[1:] {
		if e.Vit.HP < target.Vit.HP {
			target = e
		}
	}

	if distance(a.Pos.X, a.Pos.Y, target.Pos.X, target.Pos.Y) > combatMeleeRange {
		a.MoveTowards(target.Pos.X, target.Pos.Y, 1.5)
		return
	}

	strike(a, target, a.Stats.AttackPower*1.5, true)
	a.Vit.HP -= target.Stats.AttackPower * 0.5
	a.Vit.Energy -= 2.0
}

// combatDefensive only answers a recorded attacker, countering with a
// defense bonus at low risk. The attacker reference is cleared after the
// counter lands or once the referent is gone.
func combatDefensive(a *Agent, peers *Peers) {
	target := peers.ByID(a.Mem.LastAttacker)
	if target == nil {
		a.Mem.LastAttacker = components.NoAgent
		return
	}

	if distance(a.Pos.X, a.Pos.Y, target.Pos.X, target.Pos.Y) > combatMeleeRange {
		a.MoveTowards(target.Pos.X, target.Pos.Y, 1.0)
		return
	}

	strike(a, target, a.Stats.AttackPower*0.8+a.Stats.Defense, false)
	a.Vit.HP -= target.Stats.AttackPower * 0.2
	a.Vit.Energy -= 1.0
	a.Mem.LastAttacker = components.NoAgent
}

// combatGroup coordinates with same-species allies for bonus damage; it only
// engages with at least two allies nearby, and spreads part of the energy
// cost across up to two of them.
func combatGroup(a *Agent, peers *Peers) {
	allies := alliesWithin(a, peers, allyRange)
	enemies := enemiesWithin(a, peers, combatEngageRange)
	if len(enemies) == 0 || len(allies) < 2 {
		return
	}

	target := nearestAgent(a, enemies)
	if distance(a.Pos.X, a.Pos.Y, target.Pos.X, target.Pos.Y) > combatMeleeRange {
		a.MoveTowards(target.Pos.X, target.Pos.Y, 1.2)
		return
	}

	groupBonus := float64(min(len(allies), 5)) * 0.3
	strike(a, target, a.Stats.AttackPower*(1.0+groupBonus), true)
	a.Vit.HP -= target.Stats.AttackPower * 0.3
	a.Vit.Energy -= 1.5
	for _, ally := range allies[:2] {
		ally.Vit.Energy -= 0.5
	}
}

// strike applies damage to the target and records the attack. When rout is
// set the target is forced into fleeing with the attacker's position as the
// recorded threat and the attacker as its last attacker.
func strike(a, target *Agent, damage float64, rout bool) {
	target.Vit.HP -= damage
	if rout {
		target.Beh.State = components.StateFleeing
		target.Mem.ThreatX = a.Pos.X
		target.Mem.ThreatY = a.Pos.Y
		target.Mem.HasThreat = true
		target.Mem.LastAttacker = a.ID
	}
	a.Cnt.Attacks++
}

// enemiesWithin returns live agents of a different species within radius.
func enemiesWithin(a *Agent, peers *Peers, radius float64) []*Agent {
	var out []*Agent
	rSq := radius * radius
	for i := range peers.Agents {
		o := &peers.Agents[i]
		if o.ID == a.ID || !o.Alive() || o.Species == a.Species {
			continue
		}
		if distanceSq(a.Pos.X, a.Pos.Y, o.Pos.X, o.Pos.Y) < rSq {
			out = append(out, o)
		}
	}
	return out
}

// alliesWithin returns live same-species agents within radius.
func alliesWithin(a *Agent, peers *Peers, radius float64) []*Agent {
	var out []*Agent
	rSq := radius * radius
	for i := range peers.Agents {
		o := &peers.Agents[i]
		if o.ID == a.ID || !o.Alive() || o.Species != a.Species {
			continue
		}
		if distanceSq(a.Pos.X, a.Pos.Y, o.Pos.X, o.Pos.Y) < rSq {
			out = append(out, o)
		}
	}
	return out
}

// nearestAgent returns the closest of the candidates to a. Candidates must
// be non-empty.
func nearestAgent(a *Agent, candidates []*Agent) *Agent {
	best := candidates[0]
	bestSq := distanceSq(a.Pos.X, a.Pos.Y, best.Pos.X, best.Pos.Y)
	for _, o := range candidates[1:] {
		dSq := distanceSq(a.Pos.X, a.Pos.Y, o.Pos.X, o.Pos.Y)
		if dSq < bestSq {
			best = o
			bestSq = dSq
		}
	}
	return best
}

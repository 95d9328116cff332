// Package components defines ECS components for the simulation.
package components

// NoAgent is the nil agent id. Real ids start at 1.
const NoAgent uint32 = 0

// State is an agent's lifecycle state. StateDead is terminal.
type State uint8

const (
	StateIdle State = iota
	StateForaging
	StateFleeing
	StateFighting
	StateDead
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateForaging:
		return "foraging"
	case StateFleeing:
		return "fleeing"
	case StateFighting:
		return "fighting"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// DeathCause records why an agent died.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseHP
	CauseEnergy
	CauseOldAge
)

// String returns the display name of the death cause.
func (c DeathCause) String() string {
	switch c {
	case CauseHP:
		return "HP depleted"
	case CauseEnergy:
		return "energy depleted"
	case CauseOldAge:
		return "old age"
	}
	return "none"
}

// Identity carries the agent's process-unique id and species index.
// Species indexes the read-only species stat table.
type Identity struct {
	ID      uint32
	Species uint8
}

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float64
}

// Vitals tracks an agent's metabolic state. Maxima are copied from the
// species stat block at construction. HP and energy may transiently go
// negative after combat or reproduction costs; the next death check is the
// sole point that converts that into the dead state.
type Vitals struct {
	HP        float64
	MaxHP     float64
	Energy    float64
	MaxEnergy float64
	Age       float64
	// SinceRepro counts age units elapsed since the last reproduction.
	SinceRepro float64
}

// Behavior bundles the state machine position and the heritable behavioral
// profile: one probability distribution per decision context plus the
// personal hunger threshold. Each distribution sums to 1.0.
type Behavior struct {
	State State
	Cause DeathCause

	Foraging [NumForaging]float64
	Combat   [NumCombat]float64
	Flee     [NumFlee]float64

	// HungerThreshold is the energy ratio below which the agent forages.
	HungerThreshold float64

	CurForaging ForagingStrategy
	CurCombat   CombatStrategy
	CurFlee     FleeStrategy

	// EscapeCounted guards the escapes counter so each continuous flee
	// episode increments it exactly once. Cleared on return to idle.
	EscapeCounted bool
}

// Memory holds transient tactical state. LastAttacker is a non-owning agent
// id resolved through the live-agent snapshot each use; a dead or reaped
// referent resolves to none.
type Memory struct {
	ThreatX, ThreatY float64
	HasThreat        bool

	LastAttacker uint32

	WanderX, WanderY float64
	HasWander        bool

	// TargetResource is the id of the resource last sought, 0 if none.
	TargetResource uint32
}

// Counters tracks lifetime event counts. Monotonically non-decreasing while
// the agent is alive.
type Counters struct {
	Communications uint32
	Attacks        uint32
	Meals          uint32
	Escapes        uint32
	Offspring      uint32
}

package components

import "fmt"

// The strategy registries are closed: every variant is known at build time
// and dispatched through a switch in the systems package. Names are kept for
// configuration and display.

// ForagingStrategy selects how an agent searches for food.
type ForagingStrategy uint8

const (
	ForageWideView ForagingStrategy = iota
	ForageFastMove
	ForageRandomWalk
	ForageAmbush

	NumForaging = 4
)

var foragingNames = [NumForaging]string{"WideView", "FastMove", "RandomWalk", "Ambush"}

// String returns the registry name of the strategy.
func (s ForagingStrategy) String() string {
	if int(s) < len(foragingNames) {
		return foragingNames[s]
	}
	return fmt.Sprintf("ForagingStrategy(%d)", uint8(s))
}

// ForagingStrategies lists all foraging strategies in distribution order.
func ForagingStrategies() [NumForaging]string { return foragingNames }

// ParseForagingStrategy resolves a registry name to a strategy.
func ParseForagingStrategy(name string) (ForagingStrategy, error) {
	for i, n := range foragingNames {
		if n == name {
			return ForagingStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown foraging strategy %q", name)
}

// CombatStrategy selects how an agent fights.
type CombatStrategy uint8

const (
	CombatAggressive CombatStrategy = iota
	CombatDefensive
	CombatGroup

	NumCombat = 3
)

var combatNames = [NumCombat]string{"Aggressive", "Defensive", "Group"}

// String returns the registry name of the strategy.
func (s CombatStrategy) String() string {
	if int(s) < len(combatNames) {
		return combatNames[s]
	}
	return fmt.Sprintf("CombatStrategy(%d)", uint8(s))
}

// CombatStrategies lists all combat strategies in distribution order.
func CombatStrategies() [NumCombat]string { return combatNames }

// ParseCombatStrategy resolves a registry name to a strategy.
func ParseCombatStrategy(name string) (CombatStrategy, error) {
	for i, n := range combatNames {
		if n == name {
			return CombatStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown combat strategy %q", name)
}

// FleeStrategy selects how an agent escapes a threat.
type FleeStrategy uint8

const (
	FleeSpeed FleeStrategy = iota
	FleeHide
	FleeScatter

	NumFlee = 3
)

var fleeNames = [NumFlee]string{"Speed", "Hide", "Scatter"}

// String returns the registry name of the strategy.
func (s FleeStrategy) String() string {
	if int(s) < len(fleeNames) {
		return fleeNames[s]
	}
	return fmt.Sprintf("FleeStrategy(%d)", uint8(s))
}

// FleeStrategies lists all flee strategies in distribution order.
func FleeStrategies() [NumFlee]string { return fleeNames }

// ParseFleeStrategy resolves a registry name to a strategy.
func ParseFleeStrategy(name string) (FleeStrategy, error) {
	for i, n := range fleeNames {
		if n == name {
			return FleeStrategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flee strategy %q", name)
}

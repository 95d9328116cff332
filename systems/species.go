package systems

import (
	"fmt"

	"github.com/troop-sim/troop/config"
)

// DietMask is a bit set of resource kinds a species can digest.
type DietMask uint8

// Has reports whether the mask includes kind.
func (m DietMask) Has(kind ResourceKind) bool {
	return m&(1<<kind) != 0
}

// SpeciesStats is the runtime form of a species stat block. Built once from
// configuration and read-only thereafter.
type SpeciesStats struct {
	Name                 string
	MaxHP                float64
	MaxEnergy            float64
	BaseSpeed            float64
	AttackPower          float64
	Defense              float64
	ViewRange            float64
	MaxAge               float64
	Diet                 DietMask
	SocialRecovery       float64
	FoodRequirement      float64
	ReproductionCooldown float64
}

// BuildSpeciesTable converts the configured species blocks into the runtime
// table indexed by species id.
func BuildSpeciesTable(cfgs []config.SpeciesConfig) ([]SpeciesStats, error) {
	table := make([]SpeciesStats, len(cfgs))
	for i, sp := range cfgs {
		var diet DietMask
		for _, d := range sp.Diet {
			kind, err := ParseResourceKind(d)
			if err != nil {
				return nil, fmt.Errorf("species %q: %w", sp.Name, err)
			}
			diet |= 1 << kind
		}
		if diet == 0 {
			return nil, fmt.Errorf("species %q has an empty diet", sp.Name)
		}
		table[i] = SpeciesStats{
			Name:                 sp.Name,
			MaxHP:                sp.MaxHP,
			MaxEnergy:            sp.MaxEnergy,
			BaseSpeed:            sp.BaseSpeed,
			AttackPower:          sp.AttackPower,
			Defense:              sp.Defense,
			ViewRange:            sp.ViewRange,
			MaxAge:               sp.MaxAge,
			Diet:                 diet,
			SocialRecovery:       sp.SocialRecovery,
			FoodRequirement:      sp.FoodRequirement,
			ReproductionCooldown: sp.ReproductionCooldown,
		}
	}
	return table, nil
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Simulation   SimulationConfig   `yaml:"simulation"`
	Learning     LearningConfig     `yaml:"learning"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Resources    ResourceConfig     `yaml:"resources"`
	Population   PopulationConfig   `yaml:"population"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Species      []SpeciesConfig    `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the bounded field dimensions.
// EdgeInset keeps spawn points away from the hard boundary.
type WorldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	EdgeInset float64 `yaml:"edge_inset"`
}

// SimulationConfig holds per-tick metabolism and state machine parameters.
type SimulationConfig struct {
	AgeIncrement        float64 `yaml:"age_increment"`        // age units added per tick
	MetabolismRate      float64 `yaml:"metabolism_rate"`      // energy drained per tick
	StarvationThreshold float64 `yaml:"starvation_threshold"` // energy ratio below which hp decays
	StarvationDamage    float64 `yaml:"starvation_damage"`    // hp lost per starving tick
	VelocityDecay       float64 `yaml:"velocity_decay"`       // multiplicative damping per tick
	LowHPFleeRatio      float64 `yaml:"low_hp_flee_ratio"`    // hp ratio forcing the fleeing state
	FightEnergyRatio    float64 `yaml:"fight_energy_ratio"`   // minimum energy ratio to pick a fight
	FightFitnessMargin  float64 `yaml:"fight_fitness_margin"` // required fitness advantage over nearest enemy
}

// LearningConfig holds imitation learning parameters.
type LearningConfig struct {
	Rate              float64 `yaml:"rate"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	Period            int     `yaml:"period"` // ticks between learning passes
}

// ReproductionConfig holds mating and inheritance parameters.
type ReproductionConfig struct {
	Period        int     `yaml:"period"` // ticks between reproduction passes
	MinAge        float64 `yaml:"min_age"`
	FertileWindow float64 `yaml:"fertile_window"`
	MatingRange   float64 `yaml:"mating_range"`
	EnergyCost    float64 `yaml:"energy_cost"`
	HPCost        float64 `yaml:"hp_cost"`
	MutationRate  float64 `yaml:"mutation_rate"`
	SpawnJitter   float64 `yaml:"spawn_jitter"`
	VitalityFloor float64 `yaml:"vitality_floor"` // min energy/hp fraction to mate
}

// ResourceConfig holds environment resource economy parameters.
type ResourceConfig struct {
	SpawnInterval     int     `yaml:"spawn_interval"`
	MaxPlant          int     `yaml:"max_plant"`
	MaxMeat           int     `yaml:"max_meat"`
	PlantNutrition    float64 `yaml:"plant_nutrition"`
	MeatNutrition     float64 `yaml:"meat_nutrition"`
	PlantChance       float64 `yaml:"plant_chance"`
	EatRange          float64 `yaml:"eat_range"`
	ClusterScale      float64 `yaml:"cluster_scale"`
	ClusterCandidates int     `yaml:"cluster_candidates"`
}

// PopulationConfig holds the initial population makeup.
type PopulationConfig struct {
	Initial []PopulationGroup `yaml:"initial"`
}

// PopulationGroup is one species cohort of the initial population.
type PopulationGroup struct {
	Species string `yaml:"species"`
	Count   int    `yaml:"count"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
	PerfWindow  int `yaml:"perf_window"`
}

// SpeciesConfig is the immutable stat block for one species. It is supplied
// once at load time and treated as read-only by the simulation core.
type SpeciesConfig struct {
	Name                 string   `yaml:"name"`
	MaxHP                float64  `yaml:"max_hp"`
	MaxEnergy            float64  `yaml:"max_energy"`
	BaseSpeed            float64  `yaml:"base_speed"`
	AttackPower          float64  `yaml:"attack_power"`
	Defense              float64  `yaml:"defense"`
	ViewRange            float64  `yaml:"view_range"`
	MaxAge               float64  `yaml:"max_age"`
	Diet                 []string `yaml:"diet"`
	SocialRecovery       float64  `yaml:"social_recovery"`
	FoodRequirement      float64  `yaml:"food_requirement"`
	ReproductionCooldown float64  `yaml:"reproduction_cooldown"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpeciesIndex map[string]uint8 // name -> index for species lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate checks fatal preconditions on the species table. A broken species
// block is a configuration error, not a per-tick recoverable condition.
func (c *Config) validate() error {
	if len(c.Species) == 0 {
		return fmt.Errorf("config: no species defined")
	}
	seen := make(map[string]bool, len(c.Species))
	for i, sp := range c.Species {
		if sp.Name == "" {
			return fmt.Errorf("config: species %d has no name", i)
		}
		if seen[sp.Name] {
			return fmt.Errorf("config: duplicate species %q", sp.Name)
		}
		seen[sp.Name] = true
		if sp.MaxHP <= 0 || sp.MaxEnergy <= 0 {
			return fmt.Errorf("config: species %q has non-positive vitals", sp.Name)
		}
		if sp.MaxAge <= 0 {
			return fmt.Errorf("config: species %q has non-positive max_age", sp.Name)
		}
		if len(sp.Diet) == 0 {
			return fmt.Errorf("config: species %q has an empty diet", sp.Name)
		}
		for _, d := range sp.Diet {
			if d != "plant" && d != "meat" {
				return fmt.Errorf("config: species %q has unknown diet entry %q", sp.Name, d)
			}
		}
	}
	for _, grp := range c.Population.Initial {
		if !seen[grp.Species] {
			return fmt.Errorf("config: initial population references unknown species %q", grp.Species)
		}
		if grp.Count < 0 {
			return fmt.Errorf("config: initial population count for %q is negative", grp.Species)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpeciesIndex = make(map[string]uint8, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = uint8(i)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

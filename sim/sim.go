// Package sim owns the simulation world: entity storage, the per-tick
// update order, and population bookkeeping.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
	"github.com/troop-sim/troop/systems"
	"github.com/troop-sim/troop/telemetry"
)

// Options configures a simulation instance.
type Options struct {
	Seed     int64
	LogStats bool
}

// Sim holds the complete simulation state.
type Sim struct {
	world *ecs.World
	rng   *rand.Rand

	mapper *ecs.Map7[
		components.Identity,
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Behavior,
		components.Memory,
		components.Counters,
	]
	filter *ecs.Filter7[
		components.Identity,
		components.Position,
		components.Velocity,
		components.Vitals,
		components.Behavior,
		components.Memory,
		components.Counters,
	]

	species   []systems.SpeciesStats
	env       *systems.Environment
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	logStats  bool

	tick       int
	nextID     uint32
	aliveCount int
}

// New creates a simulation with the initial population placed and the
// environment seeded. Config must be initialized first.
func New(opts Options) (*Sim, error) {
	cfg := config.Cfg()

	species, err := systems.BuildSpeciesTable(cfg.Species)
	if err != nil {
		return nil, fmt.Errorf("building species table: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	s := &Sim{
		world: world,
		rng:   rng,
		mapper: ecs.NewMap7[
			components.Identity,
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Behavior,
			components.Memory,
			components.Counters,
		](world),
		filter: ecs.NewFilter7[
			components.Identity,
			components.Position,
			components.Velocity,
			components.Vitals,
			components.Behavior,
			components.Memory,
			components.Counters,
		](world),
		species:   species,
		env:       systems.NewEnvironment(cfg.World.Width, cfg.World.Height, opts.Seed, rng),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowTicks, len(species)),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:  opts.LogStats,
	}

	s.seedPopulation(cfg)
	return s, nil
}

// seedPopulation places the configured founding cohorts with randomized
// behavior profiles, away from the world edges.
func (s *Sim) seedPopulation(cfg *config.Config) {
	const spawnInset = 50.0
	for _, grp := range cfg.Population.Initial {
		idx := cfg.Derived.SpeciesIndex[grp.Species]
		for i := 0; i < grp.Count; i++ {
			x := spawnInset + s.rng.Float64()*(cfg.World.Width-2*spawnInset)
			y := spawnInset + s.rng.Float64()*(cfg.World.Height-2*spawnInset)
			s.spawnAgent(idx, x, y, systems.NewBehavior(s.rng))
		}
	}
}

// spawnAgent creates one agent entity with full vitals.
func (s *Sim) spawnAgent(species uint8, x, y float64, beh components.Behavior) {
	stats := &s.species[species]
	s.nextID++

	ident := components.Identity{ID: s.nextID, Species: species}
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	vit := components.Vitals{
		HP:        stats.MaxHP,
		MaxHP:     stats.MaxHP,
		Energy:    stats.MaxEnergy,
		MaxEnergy: stats.MaxEnergy,
	}
	mem := components.Memory{}
	cnt := components.Counters{}

	s.mapper.NewEntity(&ident, &pos, &vel, &vit, &beh, &mem, &cnt)
	s.aliveCount++
}

// Step advances the simulation one tick. Returns the flushed window stats
// when a stats window completed this tick, nil otherwise.
func (s *Sim) Step() (*telemetry.WindowStats, []telemetry.SpeciesWindow) {
	cfg := config.Cfg()
	s.perf.StartTick()
	s.tick++

	s.perf.StartPhase(telemetry.PhaseEnvironment)
	s.env.Update()

	// Agents act in snapshot order; mutations made through the snapshot
	// pointers are visible to agents updated later in the same tick.
	s.perf.StartPhase(telemetry.PhaseAgents)
	peers := s.snapshot()
	for i := range peers.Agents {
		systems.Advance(&peers.Agents[i], s.env, peers, s.rng)
	}

	s.perf.StartPhase(telemetry.PhaseLearning)
	if cfg.Learning.Period > 0 && s.tick%cfg.Learning.Period == 0 {
		s.collector.RecordLearning(systems.RunLearningPass(peers))
	}

	s.perf.StartPhase(telemetry.PhaseReproduction)
	if cfg.Reproduction.Period > 0 && s.tick%cfg.Reproduction.Period == 0 {
		for _, o := range systems.RunReproductionPass(peers, s.rng) {
			s.spawnAgent(o.Species, o.X, o.Y, o.Behavior(s.rng))
			s.collector.RecordBirth(o.Species)
			slog.Debug("agent born",
				"id", s.nextID,
				"species", s.species[o.Species].Name,
				"tick", s.tick,
			)
		}
	}

	s.perf.StartPhase(telemetry.PhaseCleanup)
	s.reapDead()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	var flushed *telemetry.WindowStats
	var rows []telemetry.SpeciesWindow
	if s.collector.ShouldFlush(s.tick) {
		stats, speciesRows := s.collector.Flush(s.tick, s.sample())
		if s.logStats {
			stats.LogStats()
		}
		flushed = &stats
		rows = speciesRows
	}
	s.perf.EndTick()

	return flushed, rows
}

// snapshot builds the live-agent view for this tick. Component pointers stay
// valid for the whole tick because entity creation and removal are deferred
// until after all passes complete.
func (s *Sim) snapshot() *systems.Peers {
	agents := make([]systems.Agent, 0, s.aliveCount)

	query := s.filter.Query()
	for query.Next() {
		ident, pos, vel, vit, beh, mem, cnt := query.Get()
		if beh.State == components.StateDead {
			continue
		}
		agents = append(agents, systems.Agent{
			Entity:  query.Entity(),
			ID:      ident.ID,
			Species: ident.Species,
			Stats:   &s.species[ident.Species],
			Pos:     pos,
			Vel:     vel,
			Vit:     vit,
			Beh:     beh,
			Mem:     mem,
			Cnt:     cnt,
		})
	}

	return systems.NewPeers(agents)
}

// reapDead removes entities that died this tick, banking their counters.
func (s *Sim) reapDead() {
	type deadInfo struct {
		entity  ecs.Entity
		id      uint32
		species uint8
		cause   components.DeathCause
		age     float64
		cnt     components.Counters
	}
	var toRemove []deadInfo

	// Collect first: removal must wait until query iteration completes.
	query := s.filter.Query()
	for query.Next() {
		ident, _, _, vit, beh, _, cnt := query.Get()
		if beh.State == components.StateDead {
			toRemove = append(toRemove, deadInfo{
				entity:  query.Entity(),
				id:      ident.ID,
				species: ident.Species,
				cause:   beh.Cause,
				age:     vit.Age,
				cnt:     *cnt,
			})
		}
	}

	for _, dead := range toRemove {
		s.collector.RecordDeath(dead.species, dead.cause, dead.cnt)
		s.mapper.Remove(dead.entity)
		s.aliveCount--
		slog.Debug("agent died",
			"id", dead.id,
			"species", s.species[dead.species].Name,
			"cause", dead.cause.String(),
			"age", dead.age,
			"tick", s.tick,
		)
	}
}

// sample captures the live per-species state for a window flush.
func (s *Sim) sample() telemetry.Sample {
	sample := telemetry.Sample{
		Species: make([]telemetry.SpeciesSample, len(s.species)),
	}
	for i := range s.species {
		sample.Species[i].Name = s.species[i].Name
	}

	query := s.filter.Query()
	for query.Next() {
		ident, _, _, vit, beh, _, cnt := query.Get()
		if beh.State == components.StateDead {
			continue
		}
		sp := &sample.Species[ident.Species]
		sp.Count++
		sp.Fitness = append(sp.Fitness, vit.HP/vit.MaxHP+vit.Energy/vit.MaxEnergy)
		sp.EnergyRatio = append(sp.EnergyRatio, vit.Energy/vit.MaxEnergy)
		sample.Live.Add(*cnt)
	}

	sample.Plants, sample.Meat = s.env.ResourceCounts()
	return sample
}

// Tick returns the current tick number.
func (s *Sim) Tick() int {
	return s.tick
}

// LiveAgents returns the number of living agents.
func (s *Sim) LiveAgents() int {
	return s.aliveCount
}

// PerfStats returns aggregated tick timing over the perf window.
func (s *Sim) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// Environment exposes the resource environment, mainly for tests.
func (s *Sim) Environment() *systems.Environment {
	return s.env
}

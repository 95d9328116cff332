package telemetry

import "github.com/troop-sim/troop/components"

// Totals is a monotone sum of per-agent counters across the whole run,
// covering both live agents and agents that have since died.
type Totals struct {
	Meals          uint64
	Attacks        uint64
	Escapes        uint64
	Communications uint64
}

// Add accumulates one agent's counters.
func (t *Totals) Add(c components.Counters) {
	t.Meals += uint64(c.Meals)
	t.Attacks += uint64(c.Attacks)
	t.Escapes += uint64(c.Escapes)
	t.Communications += uint64(c.Communications)
}

// Plus returns the element-wise sum of two totals.
func (t Totals) Plus(o Totals) Totals {
	return Totals{
		Meals:          t.Meals + o.Meals,
		Attacks:        t.Attacks + o.Attacks,
		Escapes:        t.Escapes + o.Escapes,
		Communications: t.Communications + o.Communications,
	}
}

// SpeciesSample is the live per-species state captured at a window boundary.
type SpeciesSample struct {
	Name        string
	Count       int
	Fitness     []float64
	EnergyRatio []float64
}

// Sample is the live world state captured at a window boundary. Live is the
// counter sum over currently alive agents only; the collector adds the
// counters it banked from agents that died earlier.
type Sample struct {
	Species []SpeciesSample
	Live    Totals
	Plants  int
	Meat    int
}

// Collector accumulates events within stats windows and produces
// WindowStats. Per-agent activity counters live on the agents themselves;
// the collector banks them when an agent dies so window deltas stay exact
// across deaths.
type Collector struct {
	windowTicks     int
	windowStartTick int

	births       []int
	deaths       []int
	deathsHP     int
	deathsEnergy int
	deathsOldAge int
	learning     int

	banked Totals // counters of dead agents, accumulated over the run
	prev   Totals // banked+live totals at the previous flush
}

// NewCollector creates a collector flushing every windowTicks ticks, for
// nSpecies species.
func NewCollector(windowTicks, nSpecies int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		births:      make([]int, nSpecies),
		deaths:      make([]int, nSpecies),
	}
}

// RecordBirth records one birth of the given species.
func (c *Collector) RecordBirth(species uint8) {
	c.births[species]++
}

// RecordDeath records one death and banks the dead agent's counters.
func (c *Collector) RecordDeath(species uint8, cause components.DeathCause, cnt components.Counters) {
	c.deaths[species]++
	switch cause {
	case components.CauseHP:
		c.deathsHP++
	case components.CauseEnergy:
		c.deathsEnergy++
	case components.CauseOldAge:
		c.deathsOldAge++
	}
	c.banked.Add(cnt)
}

// RecordLearning adds learning events from one learning pass.
func (c *Collector) RecordLearning(events int) {
	c.learning += events
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the window stats and per-species rows from the live sample,
// then resets the window counters.
func (c *Collector) Flush(currentTick int, sample Sample) (WindowStats, []SpeciesWindow) {
	totals := c.banked.Plus(sample.Live)

	var agents, births, deaths int
	var fitness, energyRatio []float64
	rows := make([]SpeciesWindow, len(sample.Species))
	for i, sp := range sample.Species {
		agents += sp.Count
		births += c.births[i]
		deaths += c.deaths[i]
		fitness = append(fitness, sp.Fitness...)
		energyRatio = append(energyRatio, sp.EnergyRatio...)

		fitMean, _ := MeanStd(sp.Fitness)
		enMean, _ := MeanStd(sp.EnergyRatio)
		rows[i] = SpeciesWindow{
			WindowEndTick:   currentTick,
			Species:         sp.Name,
			Count:           sp.Count,
			Births:          c.births[i],
			Deaths:          c.deaths[i],
			FitnessMean:     fitMean,
			EnergyRatioMean: enMean,
		}
	}

	fitMean, p10, p50, p90 := Summarize(fitness)
	enMean, enStd := MeanStd(energyRatio)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Agents: agents,

		Births:         births,
		Deaths:         deaths,
		DeathsHP:       c.deathsHP,
		DeathsEnergy:   c.deathsEnergy,
		DeathsOldAge:   c.deathsOldAge,
		Meals:          int(totals.Meals - c.prev.Meals),
		Attacks:        int(totals.Attacks - c.prev.Attacks),
		Escapes:        int(totals.Escapes - c.prev.Escapes),
		Communications: int(totals.Communications - c.prev.Communications),
		LearningEvents: c.learning,

		FitnessMean: fitMean,
		FitnessP10:  p10,
		FitnessP50:  p50,
		FitnessP90:  p90,

		EnergyRatioMean: enMean,
		EnergyRatioStd:  enStd,

		Plants: sample.Plants,
		Meat:   sample.Meat,
	}

	c.windowStartTick = currentTick
	for i := range c.births {
		c.births[i] = 0
		c.deaths[i] = 0
	}
	c.deathsHP = 0
	c.deathsEnergy = 0
	c.deathsOldAge = 0
	c.learning = 0
	c.prev = totals

	return stats, rows
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

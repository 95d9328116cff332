// Package telemetry aggregates simulation events into periodic window
// statistics and writes them to CSV, structured logs, and an optional
// websocket stream.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Agents int `csv:"agents"`

	// Events during the window
	Births         int `csv:"births"`
	Deaths         int `csv:"deaths"`
	DeathsHP       int `csv:"deaths_hp"`
	DeathsEnergy   int `csv:"deaths_energy"`
	DeathsOldAge   int `csv:"deaths_old_age"`
	Meals          int `csv:"meals"`
	Attacks        int `csv:"attacks"`
	Escapes        int `csv:"escapes"`
	Communications int `csv:"communications"`
	LearningEvents int `csv:"learning_events"`

	// Fitness distribution sampled at window end
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Energy ratio distribution sampled at window end
	EnergyRatioMean float64 `csv:"energy_ratio_mean"`
	EnergyRatioStd  float64 `csv:"energy_ratio_std"`

	// Environment at window end
	Plants int `csv:"plants"`
	Meat   int `csv:"meat"`
}

// SpeciesWindow is the per-species row accompanying a WindowStats.
type SpeciesWindow struct {
	WindowEndTick int    `csv:"window_end"`
	Species       string `csv:"species"`
	Count         int    `csv:"count"`
	Births        int    `csv:"births"`
	Deaths        int    `csv:"deaths"`
	FitnessMean   float64 `csv:"fitness_mean"`
	EnergyRatioMean float64 `csv:"energy_ratio_mean"`
}

// Summarize computes mean and the 10th, 50th and 90th percentiles of values.
// Returns zeros for an empty slice.
func Summarize(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// MeanStd computes mean and population standard deviation of values.
// Returns zeros for an empty slice.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return mean, std
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"agents", s.Agents,
		"births", s.Births,
		"deaths", s.Deaths,
		"deaths_hp", s.DeathsHP,
		"deaths_energy", s.DeathsEnergy,
		"deaths_old_age", s.DeathsOldAge,
		"meals", s.Meals,
		"attacks", s.Attacks,
		"escapes", s.Escapes,
		"communications", s.Communications,
		"learning_events", s.LearningEvents,
		"fitness_mean", s.FitnessMean,
		"fitness_p10", s.FitnessP10,
		"fitness_p50", s.FitnessP50,
		"fitness_p90", s.FitnessP90,
		"energy_ratio_mean", s.EnergyRatioMean,
		"energy_ratio_std", s.EnergyRatioStd,
		"plants", s.Plants,
		"meat", s.Meat,
	)
}

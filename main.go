package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/troop-sim/troop/config"
	"github.com/troop-sim/troop/sim"
	"github.com/troop-sim/troop/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and run metadata")
	streamAddr := flag.String("stream-addr", "", "Listen address for the websocket stats stream (empty = disabled)")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")
	logPerf := flag.Bool("log-perf", false, "Log tick timing via slog")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteRunInfo(telemetry.NewRunInfo(rngSeed, *maxTicks)); err != nil {
		slog.Error("failed to write run metadata", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	var stream *telemetry.Broadcaster
	if *streamAddr != "" {
		stream, err = telemetry.NewBroadcaster(*streamAddr)
		if err != nil {
			slog.Error("failed to start stats stream", "error", err)
			os.Exit(1)
		}
		defer stream.Close()
		slog.Info("stats stream listening", "addr", stream.Addr())
	}

	s, err := sim.New(sim.Options{Seed: rngSeed, LogStats: *logStats})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"agents", s.LiveAgents(),
		"output_dir", output.Dir(),
	)

	for {
		stats, species := s.Step()

		if stats != nil {
			if err := output.WriteTelemetry(*stats); err != nil {
				slog.Error("telemetry write failed", "error", err)
			}
			if err := output.WriteSpecies(species); err != nil {
				slog.Error("species stats write failed", "error", err)
			}
			perf := s.PerfStats()
			if err := output.WritePerf(perf, stats.WindowEndTick); err != nil {
				slog.Error("perf write failed", "error", err)
			}
			if *logPerf {
				perf.LogStats()
			}
			stream.Broadcast(*stats, species)
		}

		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick(), "agents", s.LiveAgents())
			return
		}
		if s.LiveAgents() == 0 {
			slog.Info("population extinct", "tick", s.Tick())
			return
		}
	}
}

// Command ribossome-headless runs the simulation without a window for a
// fixed number of ticks, writing population/perf/event CSVs, grounded on
// the teacher's top-level main.go headless flag set (-headless,
// -max-ticks, -log, -logfile, -perf).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
	"github.com/ribossome/ribossome/persist"
	"github.com/ribossome/ribossome/sim"
	"github.com/ribossome/ribossome/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use embedded defaults)")
	maxTicks := flag.Int64("max-ticks", 1000, "Number of ticks to run")
	logInterval := flag.Int64("log", 0, "Log a population summary every N ticks (0 = disabled)")
	logFile := flag.String("logfile", "", "Write logs to file instead of stdout")
	perfLog := flag.Bool("perf", false, "Log per-phase timing every --log ticks")
	outputDir := flag.String("output", "", "Directory for population.csv/perf.csv/events.csv (empty = skip CSV output)")
	snapshotOut := flag.String("snapshot-out", "", "Path to write a final snapshot (empty = skip)")
	snapshotIn := flag.String("snapshot-in", "", "Path to load an initial snapshot from (empty = fresh start)")
	windowTicks := flag.Int64("window-ticks", 100, "Telemetry window size in ticks")
	logEvents := flag.Bool("log-events", false, "Log individual birth/death/overflow events")
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			slog.Error("failed to open log file", "path", *logFile, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		sim.SetLogWriter(f)
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	grid := envgrid.New(cfg.Environment.Resolution, cfg.Derived.WorldSize)
	envgrid.Seed(grid, cfg.Environment)

	orch := sim.New(&cfg.Params, grid)
	orch.Perf = telemetry.NewPerfCollector(60)

	if *snapshotIn != "" {
		agents, hdr, err := persist.Load(*snapshotIn, grid)
		if err != nil {
			slog.Error("failed to load snapshot", "path", *snapshotIn, "error", err)
			os.Exit(1)
		}
		copy(orch.AgentsIn(), agents)
		orch.Epoch = hdr.Epoch
		slog.Info("snapshot loaded", "path", *snapshotIn, "agents", len(agents), "epoch", hdr.Epoch)
	} else {
		seedInitialPopulation(orch, cfg)
	}

	var out *telemetry.OutputManager
	if *outputDir != "" {
		var err error
		out, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := out.WriteConfig(cfg); err != nil {
			slog.Error("failed to write run config", "error", err)
		}
	}

	collector := telemetry.NewCollector(*windowTicks)
	orch.Events = collector
	orch.Output = out
	orch.LogEvents = *logEvents

	for tick := int64(0); tick < *maxTicks; tick++ {
		orch.Tick()

		agents := orch.AgentsIn()
		generations, energies, bodyCounts, ages := sampleAgents(agents)
		aliveCount := orch.AliveCount()

		if collector.ShouldFlush(tick) {
			stats := collector.Flush(tick, orch.Epoch, aliveCount, generations, energies, bodyCounts, ages)
			if out != nil {
				if err := out.WritePopulation(stats); err != nil {
					slog.Error("failed to write population stats", "error", err)
				}
			}
		}

		if *logInterval > 0 && tick%(*logInterval) == 0 {
			orch.LogTickSummary()
			if *perfLog {
				orch.LogPerfStats()
			}
		}
	}

	if out != nil {
		perfStats := orch.Perf.Stats()
		if err := out.WritePerf(perfStats, int32(*maxTicks)); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}

	if *snapshotOut != "" {
		if err := persist.Save(*snapshotOut, orch.AgentsIn(), grid, cfg.Params.RandomSeed, orch.Epoch); err != nil {
			slog.Error("failed to save snapshot", "path", *snapshotOut, "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("ran %d ticks, %d agents alive, epoch=%d\n", *maxTicks, orch.AliveCount(), orch.Epoch)
}

// seedInitialPopulation queues cfg.Params.AgentCount random-genome spawn
// requests, processed by the first tick's CPU-spawn dispatch.
func seedInitialPopulation(orch *sim.Orchestrator, cfg *config.Config) {
	rng := rand.New(rand.NewSource(cfg.Params.RandomSeed))
	for i := 0; i < cfg.Params.AgentCount; i++ {
		orch.QueueSpawn(agent.SpawnRequest{
			Seed:            rng.Int63(),
			GenomeSeed:      rng.Int63(),
			InitialEnergy:   float32(cfg.Params.FoodPower * 10),
			InitialRotation: rng.Float32() * 6.2831853,
		})
	}
}

// sampleAgents extracts the per-agent sample slices telemetry.Collector.Flush
// needs from the live population.
func sampleAgents(agents []agent.Record) (generations, energies, bodyCounts, ages []float64) {
	for i := range agents {
		rec := &agents[i]
		if rec.Alive == 0 {
			continue
		}
		generations = append(generations, float64(rec.Generation))
		energies = append(energies, float64(rec.Energy))
		bodyCounts = append(bodyCounts, float64(rec.BodyCount))
		ages = append(ages, float64(rec.Age))
	}
	return
}

package sim

import (
	"fmt"
	"io"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/telemetry"
)

// logWriter is the destination for line-oriented log output, grounded on
// the teacher's game/logging.go SetLogWriter/Logf pair. Structured events
// (slog) live alongside this for machine-readable output; Logf is for the
// human-readable tick/perf/event summaries a headless run prints.
var logWriter io.Writer

// SetLogWriter sets the line-oriented log output destination. A nil
// writer (the zero value) falls back to stdout.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted line-oriented log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogTickSummary writes a one-block population summary, grounded on the
// teacher's logWorldState: alive count, energy range, and generation
// spread over the live population.
func (o *Orchestrator) LogTickSummary() {
	agents := o.AgentsIn()
	alive := 0
	var totalEnergy, minEnergy, maxEnergy float32
	minEnergy = float32(1e9)
	var minGen, maxGen uint32
	minGen = ^uint32(0)

	for i := range agents {
		rec := &agents[i]
		if rec.Alive == 0 {
			continue
		}
		alive++
		totalEnergy += rec.Energy
		if rec.Energy < minEnergy {
			minEnergy = rec.Energy
		}
		if rec.Energy > maxEnergy {
			maxEnergy = rec.Energy
		}
		if rec.Generation < minGen {
			minGen = rec.Generation
		}
		if rec.Generation > maxGen {
			maxGen = rec.Generation
		}
	}

	avgEnergy := float32(0)
	if alive > 0 {
		avgEnergy = totalEnergy / float32(alive)
	} else {
		minEnergy = 0
	}
	if minGen == ^uint32(0) {
		minGen = 0
	}

	Logf("=== Epoch %d ===", o.Epoch)
	Logf("Alive: %d, Energy: %.2f avg (%.2f-%.2f), Generations: %d-%d",
		alive, avgEnergy, minEnergy, maxEnergy, minGen, maxGen)
	Logf("")
}

// LogPerfStats writes the per-phase timing breakdown, grounded on the
// teacher's logPerfStats.
func (o *Orchestrator) LogPerfStats() {
	if o.Perf == nil {
		return
	}
	stats := o.Perf.Stats()
	phases := []string{
		telemetry.PhaseResetSpawn, telemetry.PhaseCPUSpawns, telemetry.PhaseProcessAgent,
		telemetry.PhaseDiffuseEnv, telemetry.PhaseSlope, telemetry.PhaseDiffuseTrail,
		telemetry.PhaseClearVisual, telemetry.PhaseComposite, telemetry.PhaseResetAlive,
		telemetry.PhaseCompact, telemetry.PhaseMerge, telemetry.PhaseInitDead,
	}

	Logf("=== Perf @ Epoch %d ===", o.Epoch)
	Logf("Avg tick time: %s (%.1f ticks/sec)", stats.AvgTickDuration, stats.TicksPerSecond)
	for _, name := range phases {
		avg, ok := stats.PhaseAvg[name]
		if !ok {
			continue
		}
		Logf("  %-20s %12s  %5.1f%%", name, avg, stats.PhasePct[name])
	}
	Logf("")
}

// LogBirthEvent logs a single reproduction event, grounded on the
// teacher's logBirthEvent.
func LogBirthEvent(child *agent.Record) {
	Logf("[BIRTH] @ (%.1f,%.1f): gen=%d, energy=%.1f, parts=%d",
		child.PosX, child.PosY, child.Generation, child.Energy, child.BodyCount)
}

// LogDeathEvent logs a single death event, grounded on the teacher's
// logDeathEvent.
func LogDeathEvent(rec *agent.Record, age int64) {
	Logf("[DEATH] @ (%.1f,%.1f): gen=%d, survived=%d ticks",
		rec.PosX, rec.PosY, rec.Generation, age)
}

// LogOverflowDrop logs a spawn request dropped because the staging buffer
// was full (spec §5's overflow-drop edge case).
func LogOverflowDrop(count int) {
	Logf("[OVERFLOW] dropped %d spawn request(s): staging buffer full", count)
}

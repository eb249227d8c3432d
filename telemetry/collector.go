package telemetry

// Collector accumulates birth/death/overflow events within a tick window
// and produces PopulationStats snapshots, grounded on the teacher's
// windowed event-counter pattern (telemetry/collector.go) generalized
// from two kinds (prey/predator) down to the single agent population
// this simulation has.
type Collector struct {
	windowDurationTicks int64

	windowStartTick int64

	births        int
	deaths        int
	overflowDrops int
}

// NewCollector creates a collector that flushes every windowDurationTicks.
func NewCollector(windowDurationTicks int64) *Collector {
	if windowDurationTicks < 1 {
		windowDurationTicks = 1
	}
	return &Collector{windowDurationTicks: windowDurationTicks}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() { c.births++ }

// RecordDeath records a death event.
func (c *Collector) RecordDeath() { c.deaths++ }

// RecordOverflowDrop records a spawn or merge dropped due to a full
// staging buffer or a max_agents ceiling.
func (c *Collector) RecordOverflowDrop() { c.overflowDrops++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}

// Flush produces a PopulationStats snapshot and resets counters for the
// next window. Per-agent samples (generation, energy, body count, age)
// are supplied by the caller, which owns the agent buffer; this keeps
// the collector decoupled from the agent package's record layout.
func (c *Collector) Flush(currentTick, epoch int64, aliveCount int, generations, energies, bodyCounts, ages []float64) PopulationStats {
	energyMean, p10, p50, p90 := ComputeDistribution(energies)

	stats := PopulationStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Epoch:           epoch,

		AliveCount:    aliveCount,
		Births:        c.births,
		Deaths:        c.deaths,
		OverflowDrops: c.overflowDrops,

		MeanGeneration: mean(generations),
		MaxGeneration:  maxOf(generations),

		EnergyMean: energyMean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		BodyCountMean: mean(bodyCounts),
		AgeMean:       mean(ages),
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.overflowDrops = 0

	return stats
}

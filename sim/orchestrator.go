// Package sim implements the host orchestrator: it sequences the tick's
// twelve dispatches, owns the ping-pong agent buffer swap, resizes on
// overflow, and processes pending CPU spawn requests.
package sim

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
	"github.com/ribossome/ribossome/telemetry"
)

// Orchestrator owns the two ping-pong agent buffers, the spawn staging
// buffer, the environment grid, and the atomic counters spec §5 requires
// to be true atomics (spawn, alive, debug).
type Orchestrator struct {
	bufA, bufB []agent.Record
	inIsA      bool

	staging      []agent.Record
	spawnCounter int32

	aliveCounter    int32
	debugCounter    int32
	compactedPrefix int

	Grid   *envgrid.Grid
	Rain   *envgrid.RainFields
	Params *config.Params

	pendingSpawns []agent.SpawnRequest

	Epoch int64

	Perf *telemetry.PerfCollector

	// Events accumulates birth/death/overflow counts for the next
	// population.csv window flush. Nil disables accounting.
	Events *telemetry.Collector
	// Output, if set, receives one events.csv row per birth/death/overflow.
	Output *telemetry.OutputManager
	// LogEvents gates the per-event [BIRTH]/[DEATH]/[OVERFLOW] log lines.
	LogEvents bool

	rngSeed int64
}

// New builds an orchestrator with maxAgents-capacity ping-pong buffers,
// zeroed (dead) initially.
func New(params *config.Params, grid *envgrid.Grid) *Orchestrator {
	return &Orchestrator{
		bufA:    make([]agent.Record, params.MaxAgents),
		bufB:    make([]agent.Record, params.MaxAgents),
		inIsA:   true,
		staging: make([]agent.Record, 0, agent.StagingCapacity),
		Grid:    grid,
		Rain:    envgrid.NewRainFields(),
		Params:  params,
		rngSeed: params.RandomSeed,
	}
}

// AgentsIn returns the buffer the next tick will read from.
func (o *Orchestrator) AgentsIn() []agent.Record {
	if o.inIsA {
		return o.bufA
	}
	return o.bufB
}

// AgentsOut returns the buffer the next tick will write to.
func (o *Orchestrator) AgentsOut() []agent.Record {
	if o.inIsA {
		return o.bufB
	}
	return o.bufA
}

// AliveCount returns the number of agents marked alive after the most
// recent compaction pass.
func (o *Orchestrator) AliveCount() int {
	return int(atomic.LoadInt32(&o.aliveCounter))
}

// QueueSpawn enqueues a CPU spawn request to be processed at the start of
// the next tick.
func (o *Orchestrator) QueueSpawn(req agent.SpawnRequest) {
	o.pendingSpawns = append(o.pendingSpawns, req)
}

// Grow doubles agent-buffer capacity by full recreation, copying live
// contents, per spec §6 "agent buffer may be grown x2 on overflow".
func (o *Orchestrator) Grow() {
	newCap := len(o.bufA) * 2
	if newCap == 0 {
		newCap = 1
	}
	grownA := make([]agent.Record, newCap)
	grownB := make([]agent.Record, newCap)
	copy(grownA, o.bufA)
	copy(grownB, o.bufB)
	o.bufA, o.bufB = grownA, grownB
	o.Params.MaxAgents = newCap
}

// Tick sequences the twelve dispatches of spec §2 exactly once.
func (o *Orchestrator) Tick() {
	if o.Perf != nil {
		o.Perf.StartTick()
	}

	o.measure(telemetry.PhaseResetSpawn, o.resetSpawnCounter)
	o.measure(telemetry.PhaseCPUSpawns, o.processCPUSpawns)
	o.measure(telemetry.PhaseProcessAgent, o.processAgents)
	o.measure(telemetry.PhaseDiffuseEnv, o.diffuseEnvironment)
	o.measure(telemetry.PhaseSlope, o.recomputeSlope)
	o.measure(telemetry.PhaseDiffuseTrail, o.diffuseTrail)
	o.measure(telemetry.PhaseClearVisual, func() {})
	o.measure(telemetry.PhaseComposite, func() {})
	o.measure(telemetry.PhaseResetAlive, o.resetAliveCounter)
	o.measure(telemetry.PhaseCompact, o.compact)
	o.measure(telemetry.PhaseMerge, o.merge)
	o.measure(telemetry.PhaseInitDead, o.initDead)

	o.inIsA = !o.inIsA
	o.Epoch++
	o.Params.Epoch = o.Epoch

	if o.Perf != nil {
		o.Perf.EndTick()
	}
}

func (o *Orchestrator) measure(phase string, fn func()) {
	if o.Perf != nil {
		o.Perf.StartPhase(phase)
	}
	fn()
}

func (o *Orchestrator) resetSpawnCounter() {
	atomic.StoreInt32(&o.spawnCounter, 0)
	o.staging = o.staging[:0]
}

func (o *Orchestrator) resetAliveCounter() {
	atomic.StoreInt32(&o.aliveCounter, 0)
}

// processCPUSpawns drains pending user-initiated spawn requests into the
// next free slots of agents_in (the buffer about to be read by
// process_agents), so new agents appear the same tick they're requested.
func (o *Orchestrator) processCPUSpawns() {
	if len(o.pendingSpawns) == 0 {
		return
	}
	in := o.AgentsIn()
	n := 0
	for i := range in {
		if in[i].Alive == 0 {
			n++
		}
	}
	_ = n

	for _, req := range o.pendingSpawns {
		slot := -1
		for i := range in {
			if in[i].Alive == 0 {
				slot = i
				break
			}
		}
		if slot < 0 {
			break
		}
		rec := &in[slot]
		rec.Alive = 1
		rec.Energy = req.InitialEnergy
		rec.Rotation = req.InitialRotation
		if req.PosX == 0 && req.PosY == 0 {
			rng := rand.New(rand.NewSource(req.Seed))
			rec.PosX = float32(rng.Float64() * o.Grid.WorldSize)
			rec.PosY = float32(rng.Float64() * o.Grid.WorldSize)
		} else {
			rec.PosX, rec.PosY = req.PosX, req.PosY
		}
		if req.UsesGenomeOverride() {
			rec.Genome = req.GenomeOverride
		} else {
			rng := rand.New(rand.NewSource(req.GenomeSeed))
			randomGenome(&rec.Genome, rng)
		}
	}
	o.Params.CPUSpawnCount = 0
	o.pendingSpawns = o.pendingSpawns[:0]
}

func randomGenome(g *[agent.GenomeBytes]byte, rng *rand.Rand) {
	bases := [4]byte{'A', 'U', 'G', 'C'}
	for i := range g {
		g[i] = bases[rng.Intn(4)]
	}
}

// processAgents is the dominant dispatch: a bounded worker pool over
// contiguous chunks of agents_in, each lane writing only to its own slot
// of agents_out (no aliasing), grounded on the teacher's
// snapshot/compute-chunk/apply split (game/parallel.go).
func (o *Orchestrator) processAgents() {
	in := o.AgentsIn()
	out := o.AgentsOut()

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(in) {
		numWorkers = len(in)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	chunkSize := (len(in) + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	childLists := make([][]agent.Record, numWorkers)
	deathLists := make([][]agent.Record, numWorkers)

	for w := 0; w < numWorkers; w++ {
		i0 := w * chunkSize
		i1 := i0 + chunkSize
		if i1 > len(in) {
			i1 = len(in)
		}
		if i0 >= i1 {
			continue
		}
		wg.Add(1)
		go func(w, i0, i1 int) {
			defer wg.Done()
			var children []agent.Record
			var deaths []agent.Record
			for i := i0; i < i1; i++ {
				rec := in[i]
				if rec.Alive == 0 {
					out[i] = rec
					continue
				}
				rng := agent.LaneRand(uint64(i), o.Epoch, o.rngSeed)
				child, spawned := agent.ProcessAgent(&rec, o.Grid, o.Params, rng, o.stagingFull)
				out[i] = rec
				if rec.Alive == 0 {
					deaths = append(deaths, rec)
				}
				if spawned {
					children = append(children, child)
				}
			}
			childLists[w] = children
			deathLists[w] = deaths
		}(w, i0, i1)
	}
	wg.Wait()

	for _, list := range deathLists {
		for i := range list {
			o.recordDeath(&list[i])
		}
	}
	for _, list := range childLists {
		for _, child := range list {
			o.reserveStaging(child)
		}
	}
}

// recordBirth updates the window counter, the optional events.csv stream,
// and the optional per-event log line for one successfully staged child.
func (o *Orchestrator) recordBirth(child *agent.Record) {
	if o.Events != nil {
		o.Events.RecordBirth()
	}
	if o.LogEvents {
		LogBirthEvent(child)
	}
	if o.Output != nil {
		_ = o.Output.WriteEvent(telemetry.NewEvent(telemetry.EventBirth, o.Epoch, o.Epoch, child.Generation, child.Energy))
	}
}

// recordDeath mirrors recordBirth for one agent that died this tick.
func (o *Orchestrator) recordDeath(rec *agent.Record) {
	if o.Events != nil {
		o.Events.RecordDeath()
	}
	if o.LogEvents {
		LogDeathEvent(rec, int64(rec.Age))
	}
	if o.Output != nil {
		_ = o.Output.WriteEvent(telemetry.NewEvent(telemetry.EventDeath, o.Epoch, o.Epoch, rec.Generation, rec.Energy))
	}
}

// recordOverflowDrop mirrors recordBirth for one spawn or merge dropped by
// back-pressure (a full staging buffer or the max_agents ceiling).
func (o *Orchestrator) recordOverflowDrop() {
	if o.Events != nil {
		o.Events.RecordOverflowDrop()
	}
	if o.LogEvents {
		LogOverflowDrop(1)
	}
	if o.Output != nil {
		_ = o.Output.WriteEvent(telemetry.NewEvent(telemetry.EventOverflowDrop, o.Epoch, o.Epoch, 0, 0))
	}
}

func (o *Orchestrator) stagingFull() bool {
	return int(atomic.LoadInt32(&o.spawnCounter)) >= agent.StagingCapacity
}

// reserveStaging atomically reserves a staging slot; true atomics per
// spec §5's spawn-counter requirement.
func (o *Orchestrator) reserveStaging(child agent.Record) {
	idx := atomic.AddInt32(&o.spawnCounter, 1) - 1
	if int(idx) >= agent.StagingCapacity {
		o.recordOverflowDrop() // overflow: drop, back-pressure per spec §4.7
		return
	}
	if int(idx) < cap(o.staging) {
		if int(idx) >= len(o.staging) {
			o.staging = o.staging[:idx+1]
		}
		o.staging[idx] = child
		o.recordBirth(&child)
	}
}

func (o *Orchestrator) diffuseEnvironment() {
	envgrid.Diffuse(o.Grid, envgrid.DiffuseParams{
		AlphaBlur:               float32(o.Params.AlphaBlur),
		BetaBlur:                float32(o.Params.BetaBlur),
		GammaBlur:               float32(o.Params.GammaBlur),
		AlphaSlopeBias:          float32(o.Params.AlphaSlopeBias),
		BetaSlopeBias:           float32(o.Params.BetaSlopeBias),
		AlphaMultiplier:         float32(o.Params.AlphaMultiplier),
		BetaMultiplier:          float32(o.Params.BetaMultiplier),
		ChemicalSlopeScaleAlpha: float32(o.Params.ChemicalSlopeScaleAlpha),
		ChemicalSlopeScaleBeta:  float32(o.Params.ChemicalSlopeScaleBeta),
		PerlinNoiseScale:        o.Params.PerlinNoiseScale,
		PerlinNoiseSpeed:        o.Params.PerlinNoiseSpeed,
		PerlinNoiseContrast:     o.Params.PerlinNoiseContrast,
		Epoch:                   o.Epoch,
	}, o.Rain)
}

func (o *Orchestrator) recomputeSlope() {
	envgrid.RecomputeSlope(o.Grid, float32(o.Params.ChemicalSlopeScaleAlpha), float32(o.Params.ChemicalSlopeScaleBeta))
}

func (o *Orchestrator) diffuseTrail() {
	envgrid.DiffuseTrail(o.Grid, float32(o.Params.TrailDiffusion), float32(o.Params.TrailDecay))
}

// compact stream-compacts living agents to the front of agents_out, in
// place, per spec §4.7 step 1. agents_out becomes next tick's agents_in
// once Tick's final buffer swap runs, so all of compact/merge/initDead
// operate directly on it.
func (o *Orchestrator) compact() {
	buf := o.AgentsOut()

	wasSelected := false
	survivorOfSelected := -1
	write := 0
	for read := range buf {
		if buf[read].Alive == 0 {
			if buf[read].IsSelected != 0 {
				wasSelected = true
			}
			continue
		}
		buf[write] = buf[read]
		if buf[write].IsSelected != 0 {
			survivorOfSelected = write
		}
		write++
	}
	atomic.StoreInt32(&o.aliveCounter, int32(write))
	o.compactedPrefix = write

	// Sticky-selection invariant: if the previously-selected agent died
	// this tick and no living agent currently carries the flag, hand it to
	// a random survivor.
	if wasSelected && survivorOfSelected < 0 && write > 0 {
		pick := int(atomic.AddInt32(&o.debugCounter, 1)) % write
		buf[pick].IsSelected = 1
	}
}

// merge appends the staging buffer onto the compacted tail, per spec
// §4.7 step 2, bounded by max_agents.
func (o *Orchestrator) merge() {
	buf := o.AgentsOut()
	prefix := o.compactedPrefix
	for i, child := range o.staging {
		if prefix >= len(buf) {
			for range o.staging[i:] {
				o.recordOverflowDrop() // max_agents reached: drop, back-pressure
			}
			break
		}
		buf[prefix] = child
		prefix++
	}
	atomic.StoreInt32(&o.aliveCounter, int32(prefix))
	o.compactedPrefix = prefix
}

// initDead zeroes the remaining tail slots to a well-defined dead state,
// per spec §4.7 step 3 ("indirect dispatch" realized here as a plain
// slice range since Go has no separate workgroup-size computation).
func (o *Orchestrator) initDead() {
	buf := o.AgentsOut()
	for i := o.compactedPrefix; i < len(buf); i++ {
		buf[i].Reset()
	}
}

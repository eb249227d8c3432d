package sim

import (
	"testing"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
)

func newTestOrchestrator(maxAgents int) *Orchestrator {
	params := &config.Params{
		MaxAgents:  maxAgents,
		RandomSeed: 1,
		EnergyCost: 0.01,
		VMax:       5,
		OmegaMax:   1,
		DeltaMax:   1,
	}
	grid := envgrid.New(8, 800)
	return New(params, grid)
}

func TestNewOrchestratorStartsWithDeadBuffers(t *testing.T) {
	o := newTestOrchestrator(10)
	if len(o.AgentsIn()) != 10 || len(o.AgentsOut()) != 10 {
		t.Fatalf("expected both buffers sized to MaxAgents=10, got in=%d out=%d", len(o.AgentsIn()), len(o.AgentsOut()))
	}
	if o.AliveCount() != 0 {
		t.Errorf("expected AliveCount()=0 before any tick, got %d", o.AliveCount())
	}
}

func TestTickSwapsInOutBuffers(t *testing.T) {
	o := newTestOrchestrator(4)
	before := o.AgentsIn()
	o.Tick()
	after := o.AgentsIn()

	if &before[0] == &after[0] {
		t.Error("expected Tick to swap the in/out buffer identity")
	}
}

func TestTickIncrementsEpoch(t *testing.T) {
	o := newTestOrchestrator(4)
	if o.Epoch != 0 {
		t.Fatalf("expected initial epoch 0, got %d", o.Epoch)
	}
	o.Tick()
	if o.Epoch != 1 {
		t.Errorf("expected epoch 1 after one tick, got %d", o.Epoch)
	}
	if o.Params.Epoch != 1 {
		t.Errorf("expected Params.Epoch to mirror Epoch, got %d", o.Params.Epoch)
	}
}

func TestQueueSpawnFillsFreeSlotOnProcessCPUSpawns(t *testing.T) {
	o := newTestOrchestrator(4)
	o.QueueSpawn(agent.SpawnRequest{
		Seed:            1,
		GenomeSeed:      2,
		InitialEnergy:   10,
		InitialRotation: 0.5,
	})
	o.processCPUSpawns()

	found := false
	for _, rec := range o.AgentsIn() {
		if rec.Alive != 0 {
			found = true
			if rec.Energy != 10 {
				t.Errorf("expected spawned agent's initial energy to be 10, got %v", rec.Energy)
			}
			if rec.Rotation != 0.5 {
				t.Errorf("expected spawned agent's initial rotation to be 0.5, got %v", rec.Rotation)
			}
		}
	}
	if !found {
		t.Fatal("expected a living agent after processing a queued spawn")
	}
	if len(o.pendingSpawns) != 0 {
		t.Errorf("expected pendingSpawns drained, got %d remaining", len(o.pendingSpawns))
	}
}

func TestProcessCPUSpawnsUsesGenomeOverride(t *testing.T) {
	o := newTestOrchestrator(4)
	var override [agent.GenomeBytes]byte
	for i := range override {
		override[i] = 'X'
	}
	override[0], override[1], override[2] = 'A', 'U', 'G'

	o.QueueSpawn(agent.SpawnRequest{
		Flags:          1, // UsesGenomeOverride
		GenomeOverride: override,
		InitialEnergy:  5,
		PosX:           10,
		PosY:           10,
	})
	o.processCPUSpawns()

	var rec *agent.Record
	in := o.AgentsIn()
	for i := range in {
		if in[i].Alive != 0 {
			rec = &in[i]
			break
		}
	}
	if rec == nil {
		t.Fatal("expected a living agent after processing an override spawn")
	}
	if rec.Genome != override {
		t.Error("expected spawned agent's genome to match the override, got a freshly randomized genome")
	}
	if rec.PosX != 10 || rec.PosY != 10 {
		t.Errorf("expected explicit spawn position to be honored, got (%v,%v)", rec.PosX, rec.PosY)
	}
}

func TestGrowDoublesCapacityAndPreservesContents(t *testing.T) {
	o := newTestOrchestrator(4)
	o.AgentsIn()[1].Alive = 1
	o.AgentsIn()[1].Energy = 42

	o.Grow()

	if len(o.AgentsIn()) != 8 {
		t.Fatalf("expected capacity to double to 8, got %d", len(o.AgentsIn()))
	}
	if o.Params.MaxAgents != 8 {
		t.Errorf("expected Params.MaxAgents updated to 8, got %d", o.Params.MaxAgents)
	}
	if o.AgentsIn()[1].Energy != 42 {
		t.Errorf("expected preserved agent data after growth, got energy %v", o.AgentsIn()[1].Energy)
	}
}

func TestCompactMovesAliveToFront(t *testing.T) {
	o := newTestOrchestrator(5)
	out := o.AgentsOut()
	out[0].Alive = 0
	out[1].Alive = 1
	out[1].Energy = 1
	out[2].Alive = 0
	out[3].Alive = 1
	out[3].Energy = 3
	out[4].Alive = 0

	o.compact()

	if o.AliveCount() != 2 {
		t.Fatalf("expected AliveCount()=2 after compact, got %d", o.AliveCount())
	}
	if out[0].Energy != 1 || out[1].Energy != 3 {
		t.Errorf("expected alive agents compacted to front in original order, got %v then %v", out[0].Energy, out[1].Energy)
	}
}

func TestInitDeadZeroesTail(t *testing.T) {
	o := newTestOrchestrator(5)
	out := o.AgentsOut()
	for i := range out {
		out[i].Alive = 1
		out[i].Energy = 7
	}
	o.compactedPrefix = 2

	o.initDead()

	for i := 2; i < len(out); i++ {
		if out[i].Alive != 0 || out[i].Energy != 0 {
			t.Errorf("expected tail slot %d reset to dead zero state, got %+v", i, out[i])
		}
	}
	if out[0].Alive == 0 || out[1].Alive == 0 {
		t.Error("expected compacted prefix to remain untouched by initDead")
	}
}

func TestMergeAppendsStagingWithinCapacity(t *testing.T) {
	o := newTestOrchestrator(4)
	o.compactedPrefix = 2
	o.staging = append(o.staging, agent.Record{Alive: 1, Energy: 11}, agent.Record{Alive: 1, Energy: 22}, agent.Record{Alive: 1, Energy: 33})

	o.merge()

	out := o.AgentsOut()
	if out[2].Energy != 11 || out[3].Energy != 22 {
		t.Fatalf("expected staging merged starting at compactedPrefix, got %v %v", out[2].Energy, out[3].Energy)
	}
	if o.compactedPrefix != 4 {
		t.Errorf("expected compactedPrefix to stop at buffer capacity (4), got %d", o.compactedPrefix)
	}
	if o.AliveCount() != 4 {
		t.Errorf("expected AliveCount()=4 after merge hit capacity, got %d", o.AliveCount())
	}
}

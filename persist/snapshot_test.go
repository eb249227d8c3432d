package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/envgrid"
)

func sampleAgents(n int) []agent.Record {
	agents := make([]agent.Record, n)
	for i := range agents {
		agents[i] = agent.Record{
			PosX:       float32(i) * 1.5,
			PosY:       float32(i) * 2.5,
			Energy:     10 + float32(i),
			Alive:      1,
			Generation: uint32(i),
		}
		agents[i].Genome[0] = 'A'
		agents[i].Genome[1] = 'U'
		agents[i].Genome[2] = 'G'
	}
	return agents
}

func TestSaveLoadRoundTrip(t *testing.T) {
	grid := envgrid.New(16, 1000)
	agents := sampleAgents(5)

	path := filepath.Join(t.TempDir(), "snap.bin")
	if err := Save(path, agents, grid, 42, 17); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, hdr, err := Load(path, grid)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if hdr.Version != SnapshotVersion {
		t.Errorf("expected version %d, got %d", SnapshotVersion, hdr.Version)
	}
	if hdr.GridResolution != 16 {
		t.Errorf("expected grid resolution 16, got %d", hdr.GridResolution)
	}
	if hdr.Seed != 42 {
		t.Errorf("expected seed 42, got %d", hdr.Seed)
	}
	if hdr.Epoch != 17 {
		t.Errorf("expected epoch 17, got %d", hdr.Epoch)
	}
	if hdr.AgentCount != len(agents) {
		t.Fatalf("expected agent count %d, got %d", len(agents), hdr.AgentCount)
	}

	if len(loaded) != len(agents) {
		t.Fatalf("expected %d loaded agents, got %d", len(agents), len(loaded))
	}
	for i := range agents {
		if loaded[i] != agents[i] {
			t.Errorf("agent %d round-tripped incorrectly: got %+v, want %+v", i, loaded[i], agents[i])
		}
	}
}

func TestLoadMissingDelimiterErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte("not a real snapshot"), 0644); err != nil {
		t.Fatalf("failed to write test fixture: %v", err)
	}

	if _, _, err := Load(path, nil); err == nil {
		t.Error("expected an error loading a file with no header delimiter")
	}
}

func TestLoadCrossResolutionCopiesWorldSize(t *testing.T) {
	srcGrid := envgrid.New(8, 500)
	agents := sampleAgents(1)

	path := filepath.Join(t.TempDir(), "snap.bin")
	if err := Save(path, agents, srcGrid, 1, 1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	targetGrid := envgrid.New(32, 999)
	if _, _, err := Load(path, targetGrid); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if targetGrid.WorldSize != 500 {
		t.Errorf("expected cross-resolution load to carry over WorldSize=500, got %v", targetGrid.WorldSize)
	}
	if targetGrid.R != 32 {
		t.Errorf("expected target grid resolution to remain 32, got %d", targetGrid.R)
	}
}

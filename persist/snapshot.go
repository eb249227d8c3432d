// Package persist implements snapshot save/load (spec §6): agent records
// serialized as raw bytes in their wire-contract field order, with grid
// resolution, world size and seed carried as metadata. Chemical grid
// channels are not stored, so a load neither restores nor resamples them;
// agents load unchanged, since agent world coordinates are
// grid-independent (spec §3.1).
package persist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/envgrid"
)

// SnapshotVersion is incremented whenever the binary record layout or
// header shape changes.
const SnapshotVersion = 1

// Header is the small YAML-encoded preamble written before the raw agent
// bytes, grounded on the teacher's game.go SaveSnapshot/LoadSnapshot
// pattern but trading its JSON entity list for a fixed-layout byte dump
// matching agent.Record's own wire contract.
type Header struct {
	Version        int     `yaml:"version"`
	GridResolution int     `yaml:"grid_resolution"`
	WorldSize      float64 `yaml:"world_size"`
	Seed           int64   `yaml:"seed"`
	Epoch          int64   `yaml:"epoch"`
	AgentCount     int     `yaml:"agent_count"`
}

const headerDelimiter = "\n---BINARY---\n"

// Save writes a snapshot of the current agent buffer plus grid metadata to
// path. Grid channel contents are not persisted (spec §6: "snapshot files
// carry the grid resolution as metadata"); only its resolution and world
// size and the run seed and epoch are recorded.
func Save(path string, agents []agent.Record, grid *envgrid.Grid, seed, epoch int64) error {
	hdr := Header{
		Version:        SnapshotVersion,
		GridResolution: grid.R,
		WorldSize:      grid.WorldSize,
		Seed:           seed,
		Epoch:          epoch,
		AgentCount:     len(agents),
	}

	headerBytes, err := yaml.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("marshaling snapshot header: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to save snapshot", "path", path, "error", err)
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(headerBytes); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := w.WriteString(headerDelimiter); err != nil {
		return fmt.Errorf("writing snapshot delimiter: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, agents); err != nil {
		return fmt.Errorf("writing snapshot agent records: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}

	slog.Info("snapshot saved", "path", path, "agents", len(agents), "epoch", epoch)
	return nil
}

// Load reads a snapshot written by Save. targetGrid's chemical channels
// are left as they are: the snapshot holds no channel data to restore or
// resample. If the snapshot's grid resolution differs from targetGrid's,
// only the header's world size is copied onto targetGrid. Agent positions
// are left unchanged, since world coordinates are grid-independent.
func Load(path string, targetGrid *envgrid.Grid) ([]agent.Record, *Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to load snapshot", "path", path, "error", err)
		return nil, nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	idx := bytes.Index(data, []byte(headerDelimiter))
	if idx < 0 {
		return nil, nil, fmt.Errorf("snapshot %s: missing header delimiter", path)
	}

	var hdr Header
	if err := yaml.Unmarshal(data[:idx], &hdr); err != nil {
		return nil, nil, fmt.Errorf("parsing snapshot header: %w", err)
	}

	body := data[idx+len(headerDelimiter):]
	agents := make([]agent.Record, hdr.AgentCount)
	r := bytes.NewReader(body)
	if err := binary.Read(r, binary.LittleEndian, agents); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("reading snapshot agent records: %w", err)
	}

	if targetGrid != nil && hdr.GridResolution != targetGrid.R {
		resampleIntoFrom(targetGrid, hdr.GridResolution, hdr.WorldSize)
	}

	return agents, &hdr, nil
}

// resampleIntoFrom copies the snapshot's world-space span onto targetGrid
// after a cross-resolution load. The snapshot carries no chemical channel
// payload (see Save), so no channel is resampled or reset: targetGrid
// keeps its resolution and its current channel content.
func resampleIntoFrom(targetGrid *envgrid.Grid, srcResolution int, srcWorldSize float64) {
	if srcWorldSize <= 0 {
		return
	}
	targetGrid.WorldSize = srcWorldSize
}

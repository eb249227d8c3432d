package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ribossome/ribossome/config"
)

// OutputManager owns the CSV files a headless run writes: population.csv
// (one row per flushed Collector window), perf.csv (one row per flushed
// PerfCollector window), and events.csv (one row per birth/death/overflow
// event), grounded on the teacher's `telemetry/output.go` multi-file CSV
// writer shape.
type OutputManager struct {
	dir string

	populationFile *os.File
	perfFile       *os.File
	eventsFile     *os.File

	populationHeaderWritten bool
	perfHeaderWritten       bool
	eventsHeaderWritten     bool
}

// NewOutputManager creates the output directory and opens its three CSV
// files. Returns nil, nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	var err error
	om.populationFile, err = os.Create(filepath.Join(dir, "population.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating population.csv: %w", err)
	}

	om.perfFile, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.populationFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	om.eventsFile, err = os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		om.populationFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML alongside the run's
// telemetry output.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePopulation appends one population.csv row.
func (om *OutputManager) WritePopulation(stats PopulationStats) error {
	if om == nil {
		return nil
	}
	records := []PopulationStats{stats}
	if !om.populationHeaderWritten {
		if err := gocsv.Marshal(records, om.populationFile); err != nil {
			return fmt.Errorf("writing population.csv: %w", err)
		}
		om.populationHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.populationFile); err != nil {
		return fmt.Errorf("writing population.csv: %w", err)
	}
	return nil
}

// WritePerf appends one perf.csv row.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf.csv: %w", err)
		}
		om.perfHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
		return fmt.Errorf("writing perf.csv: %w", err)
	}
	return nil
}

// WriteEvent appends one events.csv row.
func (om *OutputManager) WriteEvent(e Event) error {
	if om == nil {
		return nil
	}
	records := []Event{e}
	if !om.eventsHeaderWritten {
		if err := gocsv.Marshal(records, om.eventsFile); err != nil {
			return fmt.Errorf("writing events.csv: %w", err)
		}
		om.eventsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.eventsFile); err != nil {
		return fmt.Errorf("writing events.csv: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.populationFile, om.perfFile, om.eventsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

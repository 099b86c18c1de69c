package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir          string
	statsFile    *os.File
	snapshotFile *os.File

	statsHeaderWritten    bool
	snapshotHeaderWritten bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "clones.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating clones.csv: %w", err)
	}
	om.snapshotFile = f

	return om, nil
}

// WriteStats appends a window stats record to stats.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WriteSnapshot appends per-clone rows to clones.csv.
func (om *OutputManager) WriteSnapshot(rows []CloneSample) error {
	if om == nil || len(rows) == 0 {
		return nil
	}
	if !om.snapshotHeaderWritten {
		if err := gocsv.Marshal(rows, om.snapshotFile); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		om.snapshotHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, om.snapshotFile); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Close flushes and closes the CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var first error
	if err := om.statsFile.Close(); err != nil {
		first = err
	}
	if err := om.snapshotFile.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

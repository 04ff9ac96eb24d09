package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/JamesCalleja/Evolution-Visualizer/config"
)

// GenerationsFile is the CSV file name written under the output directory.
const GenerationsFile = "generations.csv"

// OutputManager handles append-only CSV logging of generation records.
type OutputManager struct {
	dir     string
	genFile *os.File

	headerWritten bool
}

// NewOutputManager creates the output directory and opens the generations
// CSV. Returns nil if dir is empty (output disabled); a nil manager is safe
// to call.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, GenerationsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", GenerationsFile, err)
	}

	return &OutputManager{dir: dir, genFile: f}, nil
}

// WriteConfig saves the run configuration next to the logs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends one record row. The header row is written exactly
// once, with the first record.
func (om *OutputManager) WriteGeneration(rec GenerationRecord) error {
	if om == nil {
		return nil
	}

	records := []GenerationRecord{rec}

	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.genFile); err != nil {
			return fmt.Errorf("writing generation record: %w", err)
		}
		om.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.genFile); err != nil {
			return fmt.Errorf("writing generation record: %w", err)
		}
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

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.genFile == nil {
		return nil
	}
	return om.genFile.Close()
}

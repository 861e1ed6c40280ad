// Package results persists the outcome of a training run.
package results

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// File names within the output directory
const (
	OutFile = "out.json"
	LogFile = "log.txt"
)

// Result is the outcome of a training run
type Result struct {
	Error    []float64 `json:"error"`    // the mean error of every evaluation epoch
	Response []float64 `json:"response"` // the settled output activations, pattern by pattern
}

// OpenLog creates dir if needed and opens a fresh log file in it
func OpenLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}
	f, err := os.Create(filepath.Join(dir, LogFile))
	if err != nil {
		return nil, errors.Wrap(err, "creating log file")
	}
	return f, nil
}

// Write stores the result in dir
func Write(dir string, r Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	if err := os.WriteFile(filepath.Join(dir, OutFile), data, 0o644); err != nil {
		return errors.Wrap(err, "writing result")
	}
	return nil
}

// Read loads a result previously stored in dir
func Read(dir string) (Result, error) {
	data, err := os.ReadFile(filepath.Join(dir, OutFile))
	if err != nil {
		return Result{}, errors.Wrap(err, "reading result")
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, errors.Wrap(err, "decoding result")
	}
	return r, nil
}

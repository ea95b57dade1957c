// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ajroetker/go-imatmul/hwy/contrib/matmul"
	"github.com/ajroetker/go-imatmul/matrix"
)

// ErrConfig is returned for configuration values that cannot be used.
var ErrConfig = errors.New("driver: invalid configuration")

// Default configuration values.
const (
	DefaultDataDir   = "./data/"
	DefaultInputA    = "a.bin"
	DefaultInputB    = "b.bin"
	DefaultOutput    = "c.bin"
	DefaultWorkers   = 16
	DefaultAllocator = "heap"
)

// Config is supplied at startup; nothing in the driver reads global state.
type Config struct {
	// DataDir is the directory the three matrix files live in, relative to
	// the working directory unless absolute.
	DataDir string

	// InputA, InputB and Output are file names inside DataDir.
	InputA string
	InputB string
	Output string

	// Workers is the size of the worker pool. <= 0 means GOMAXPROCS.
	Workers int

	// TileSize is the multiply tile edge (8 or 16). 0 means the default.
	TileSize int

	// Allocator names the matrix buffer allocator ("heap", "mmap").
	Allocator string
}

// DefaultConfig returns the configuration the CLI uses with no flags:
// ./data/a.bin · ./data/b.bin → ./data/c.bin on 16 workers.
func DefaultConfig() Config {
	return Config{
		DataDir:   DefaultDataDir,
		InputA:    DefaultInputA,
		InputB:    DefaultInputB,
		Output:    DefaultOutput,
		Workers:   DefaultWorkers,
		TileSize:  matmul.DefaultTileSize,
		Allocator: DefaultAllocator,
	}
}

// Validate checks every field and reports the first problem found.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: empty data directory", ErrConfig)
	}
	files := []struct{ role, name string }{
		{"input A", c.InputA},
		{"input B", c.InputB},
		{"output", c.Output},
	}
	for _, f := range files {
		if f.name == "" || filepath.Base(f.name) != f.name {
			return fmt.Errorf("%w: %s file name %q must be a plain file name", ErrConfig, f.role, f.name)
		}
	}
	if c.Output == c.InputA || c.Output == c.InputB {
		return fmt.Errorf("%w: output %q would overwrite an input", ErrConfig, c.Output)
	}
	if err := (matmul.Options{TileSize: c.TileSize}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if _, err := matrix.AllocatorByName(c.Allocator); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

// Path returns the location of file name inside DataDir.
func (c Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

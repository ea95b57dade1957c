// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-imatmul/matrix"
)

// Generated values are drawn uniformly from [GenMin, GenMax).
const (
	GenMin = -100
	GenMax = 100
)

// Generate writes two random n×n operands to cfg's input paths. The same
// seed always produces the same files.
func Generate(cfg Config, n int, seed uint64) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrConfig, n)
	}
	alloc, err := matrix.AllocatorByName(cfg.Allocator)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for _, name := range []string{cfg.InputA, cfg.InputB} {
		if err := generateFile(cfg.Path(name), n, alloc, rng); err != nil {
			return err
		}
	}
	return nil
}

func generateFile(path string, n int, alloc matrix.Allocator, rng *rand.Rand) (err error) {
	m, err := matrix.NewWithAllocator(n, alloc)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, m.Release()) }()
	for i := range n {
		row := m.Row(i)[:n]
		for j := range row {
			row[j] = int32(GenMin + rng.IntN(GenMax-GenMin))
		}
	}
	return matrix.WriteFile(path, m)
}

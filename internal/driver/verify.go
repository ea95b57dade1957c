// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ajroetker/go-imatmul/hwy/contrib/matmul"
	"github.com/ajroetker/go-imatmul/matrix"
)

// ErrMismatch is returned by Verify when the output differs from A·B.
var ErrMismatch = errors.New("driver: result mismatch")

// Verify recomputes A·B with the naive reference multiply and compares it
// against the output file. A mismatch reports the first differing element.
func Verify(ctx context.Context, cfg Config, logger *slog.Logger) (err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	alloc, err := matrix.AllocatorByName(cfg.Allocator)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	mats, err := loadAll(ctx, cfg, alloc, logger, cfg.InputA, cfg.InputB, cfg.Output)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, releaseAll(mats...)) }()
	a, b, c := mats[0], mats[1], mats[2]

	if a.Size() != b.Size() {
		return fmt.Errorf("%w: A is %dx%d but B is %dx%d", matrix.ErrShape,
			a.Size(), a.Size(), b.Size(), b.Size())
	}
	if c.Size() != a.Size() {
		return fmt.Errorf("%w: output is %dx%d, want %dx%d", ErrMismatch,
			c.Size(), c.Size(), a.Size(), a.Size())
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	want, err := matmul.MultiplyReference(a, b)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, want.Release()) }()

	n := c.Size()
	for i := range n {
		got, exp := c.Row(i)[:n], want.Row(i)[:n]
		for j := range n {
			if got[j] != exp[j] {
				return fmt.Errorf("%w: C[%d][%d] = %d, want %d", ErrMismatch, i, j, got[j], exp[j])
			}
		}
	}
	logger.Debug("verified output", "size", n)
	return nil
}

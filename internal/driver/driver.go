// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package driver runs the file-to-file multiply: it loads A and B from the
// data directory, computes C = A·B with the tiled kernel and writes C back.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-imatmul/hwy"
	"github.com/ajroetker/go-imatmul/hwy/contrib/matmul"
	"github.com/ajroetker/go-imatmul/hwy/contrib/workerpool"
	"github.com/ajroetker/go-imatmul/matrix"
)

// Result describes a completed run.
type Result struct {
	// Size is the logical edge of the three matrices.
	Size int
	// Elapsed covers transpose, clear and multiply. Loading and writing
	// are excluded.
	Elapsed time.Duration
	// Kernel is the dispatch level the host CPU was detected at.
	Kernel string
	// Workers is the worker pool size actually used.
	Workers int
	// Output is the path C was written to.
	Output string
}

// Run executes load, transpose, clear, multiply and write in that order.
// Every matrix allocated along the way is released before Run returns,
// whether or not it succeeds.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (res Result, err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	alloc, err := matrix.AllocatorByName(cfg.Allocator)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	mats, err := loadAll(ctx, cfg, alloc, logger, cfg.InputA, cfg.InputB)
	if err != nil {
		return res, err
	}
	a, b := mats[0], mats[1]
	defer func() { err = errors.Join(err, releaseAll(a, b)) }()

	if a.Size() != b.Size() {
		return res, fmt.Errorf("%w: A is %dx%d but B is %dx%d", matrix.ErrShape,
			a.Size(), a.Size(), b.Size(), b.Size())
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	pool := workerpool.New(cfg.Workers)
	defer pool.Close()
	opts := matmul.Options{TileSize: cfg.TileSize}

	logger.Debug("multiply starting", "size", a.Size(), "padded", a.PaddedSize(),
		"workers", pool.NumWorkers(), "tile", cfg.TileSize, "allocator", alloc.Name(),
		"level", hwy.CurrentLevel(), "registers", hwy.RegistersPerInt32x8())
	start := time.Now()

	bt, err := matmul.ParallelTranspose(pool, b)
	if err != nil {
		return res, err
	}
	defer func() { err = errors.Join(err, bt.Release()) }()
	logger.Debug("transposed B", "elapsed", time.Since(start))

	// B is dead once Bᵗ exists, so its buffer becomes C.
	c := b
	c.Clear()
	if err := matmul.ParallelMultiplyTransposed(pool, a, bt, c, opts); err != nil {
		return res, err
	}
	elapsed := time.Since(start)
	logger.Debug("multiplied", "elapsed", elapsed)

	out := cfg.Path(cfg.Output)
	if err := matrix.WriteFile(out, c); err != nil {
		return res, err
	}
	res = Result{
		Size:    c.Size(),
		Elapsed: elapsed,
		Kernel:  hwy.CurrentLevel().String(),
		Workers: pool.NumWorkers(),
		Output:  out,
	}
	logger.Info("run complete", "size", res.Size, "elapsed", res.Elapsed, "kernel", res.Kernel, "output", out)
	return res, nil
}

// loadAll reads the named files from cfg.DataDir concurrently. On failure
// any matrix that did load is released.
func loadAll(ctx context.Context, cfg Config, alloc matrix.Allocator, logger *slog.Logger, names ...string) ([]*matrix.Matrix, error) {
	mats := make([]*matrix.Matrix, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := cfg.Path(name)
			m, err := matrix.ReadFile(path, alloc)
			if err != nil {
				return err
			}
			logger.Debug("loaded matrix", "path", path, "size", m.Size())
			mats[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Join(err, releaseAll(mats...))
	}
	return mats, nil
}

func releaseAll(ms ...*matrix.Matrix) error {
	var errs []error
	for _, m := range ms {
		if err := m.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, fixed-size worker pool for
// data-parallel phases. A Pool is created once and reused across phases
// (transpose, multiply), so each phase costs one fan-out and one barrier
// instead of spawning goroutines.
//
// Partitioning is static: every call splits its index range into contiguous
// chunks, one per worker. The kernels that use it do a fixed amount of work
// per index, so there is nothing for work stealing to balance.
//
// Usage:
//
//	pool := workerpool.New(16)
//	defer pool.Close()
//
//	pool.ParallelForBlocks(padded, 16, func(start, end int) {
//	    transposeRows(start, end)
//	})
//	// All rows are written here: ParallelForBlocks returns after the barrier.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// phases. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents one worker's share of a phase.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for every worker to have one pending chunk.
		workC: make(chan workItem, numWorkers),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Pending work completes first.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn over [0, n) using the worker pool.
// The range is split into at most NumWorkers contiguous chunks whose sizes
// differ by at most one; fn receives (start, end) for [start, end).
// Chunks never overlap. Blocks until every chunk completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelForBlocks(n, 1, fn)
}

// ParallelForBlocks is ParallelFor with chunk boundaries rounded to multiples
// of block. n must be a multiple of block; the kernels guarantee this through
// the padding invariant, so a violation is a programmer error and panics.
func (p *Pool) ParallelForBlocks(n, block int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if block <= 0 || n%block != 0 {
		panic("workerpool: range is not a multiple of the block size")
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	chunks := Partition(n, block, p.numWorkers)
	if len(chunks) == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, c := range chunks {
		p.workC <- workItem{
			fn: func() {
				fn(c.Start, c.End)
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}

// Range is a half-open index range [Start, End).
type Range struct {
	Start, End int
}

// Partition splits [0, n) into at most parts contiguous ranges whose
// boundaries are multiples of block. Ranges are returned in order, cover
// [0, n) exactly and are never empty. n must be a multiple of block.
func Partition(n, block, parts int) []Range {
	if n <= 0 {
		return nil
	}
	blocks := n / block
	parts = max(min(parts, blocks), 1)

	// Distribute blocks evenly, giving the first (blocks % parts) ranges one extra.
	per, extra := blocks/parts, blocks%parts
	ranges := make([]Range, 0, parts)
	start := 0
	for i := range parts {
		size := per
		if i < extra {
			size++
		}
		end := start + size*block
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}

// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForEachIndexOnce(t *testing.T) {
	pool := New(16)
	defer pool.Close()

	for _, n := range []int{1, 7, 16, 17, 255, 1024} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			counts := make([]atomic.Int32, n)
			pool.ParallelFor(n, func(start, end int) {
				for i := start; i < end; i++ {
					counts[i].Add(1)
				}
			})
			for i := range counts {
				if got := counts[i].Load(); got != 1 {
					t.Fatalf("index %d visited %d times", i, got)
				}
			}
		})
	}
}

func TestParallelForBlocksAlignment(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	var mu sync.Mutex
	var seen []Range
	pool.ParallelForBlocks(160, 16, func(start, end int) {
		mu.Lock()
		seen = append(seen, Range{start, end})
		mu.Unlock()
	})

	require.Len(t, seen, 3)
	total := 0
	for _, r := range seen {
		assert.Zero(t, r.Start%16, "start %d not block aligned", r.Start)
		assert.Zero(t, r.End%16, "end %d not block aligned", r.End)
		total += r.End - r.Start
	}
	assert.Equal(t, 160, total)
}

func TestParallelForBlocksRejectsRemainder(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	assert.Panics(t, func() {
		pool.ParallelForBlocks(17, 16, func(start, end int) {})
	})
	assert.Panics(t, func() {
		pool.ParallelForBlocks(16, 0, func(start, end int) {})
	})
}

func TestPartition(t *testing.T) {
	tests := []struct {
		n, block, parts int
		want            []Range
	}{
		{0, 8, 4, nil},
		{16, 8, 4, []Range{{0, 8}, {8, 16}}},
		{64, 8, 3, []Range{{0, 24}, {24, 48}, {48, 64}}},
		{48, 16, 16, []Range{{0, 16}, {16, 32}, {32, 48}}},
		{10, 1, 1, []Range{{0, 10}}},
		{32, 16, 0, []Range{{0, 32}}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d/%d", tt.n, tt.block, tt.parts), func(t *testing.T) {
			assert.Equal(t, tt.want, Partition(tt.n, tt.block, tt.parts))
		})
	}
}

func TestEmptyRange(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	called := false
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("ParallelFor(0) should not call fn")
	}
}

func TestPoolReuse(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	// Each phase must observe every write of the previous one.
	n := 64
	data := make([]int, n)
	for phase := 1; phase <= 50; phase++ {
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				data[i]++
			}
		})
		for i := range data {
			if data[i] != phase {
				t.Fatalf("phase %d: data[%d] = %d", phase, i, data[i])
			}
		}
	}
}

func TestClose(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should be safe to call multiple times

	// Work after close runs inline.
	results := make([]int, 10)
	pool.ParallelFor(10, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i
		}
	})

	for i := range 10 {
		if results[i] != i {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	data := make([]int32, 1<<16)
	for b.Loop() {
		pool.ParallelForBlocks(len(data), 16, func(start, end int) {
			for i := start; i < end; i++ {
				data[i]++
			}
		})
	}
}

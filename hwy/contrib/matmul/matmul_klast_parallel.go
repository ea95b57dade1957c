// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"fmt"

	"github.com/ajroetker/go-imatmul/hwy/contrib/workerpool"
	"github.com/ajroetker/go-imatmul/matrix"
)

// ParallelMultiplyTransposed is MultiplyTransposed with the tile rows of C
// statically partitioned across pool. A nil pool runs on the calling
// goroutine.
//
// Every tile costs the same, so each worker gets one contiguous range of tile
// rows. Ranges start and end on tile boundaries and workers write only their
// own C rows; A and Bᵗ are only read. The call returns after all workers are
// done.
func ParallelMultiplyTransposed(pool *workerpool.Pool, a, bt, c *matrix.Matrix, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := checkOperands("multiply", a, bt, c); err != nil {
		return err
	}
	if c == a || c == bt {
		return fmt.Errorf("multiply: %w: result aliases an operand", matrix.ErrShape)
	}

	p := a.PaddedSize()
	tile := opts.tileSize()
	ad, bd, cd := a.Data(), bt.Data(), c.Data()

	if pool == nil {
		multiplyTileRows(ad, bd, cd, p, tile, 0, p)
		return nil
	}
	pool.ParallelForBlocks(p, tile, func(start, end int) {
		multiplyTileRows(ad, bd, cd, p, tile, start, end)
	})
	return nil
}

// Multiply returns A · B in a new matrix. It runs the full sequence: transpose
// B (barrier), allocate and zero C, multiply (barrier). A nil pool runs
// everything on the calling goroutine.
func Multiply(pool *workerpool.Pool, a, b *matrix.Matrix, opts Options) (*matrix.Matrix, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkOperands("multiply", a, b); err != nil {
		return nil, err
	}

	bt, err := ParallelTranspose(pool, b)
	if err != nil {
		return nil, err
	}
	defer bt.Release()

	c, err := matrix.NewWithAllocator(a.Size(), a.Allocator())
	if err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	c.Clear()

	if err := ParallelMultiplyTransposed(pool, a, bt, c, opts); err != nil {
		_ = c.Release()
		return nil, err
	}
	return c, nil
}

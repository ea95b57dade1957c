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
	"github.com/ajroetker/go-imatmul/hwy"
	"github.com/ajroetker/go-imatmul/matrix"
)

// MultiplyTransposed accumulates A · (Bᵗ)ᵗ into C on the calling goroutine:
//
//	C[i][j] += Σ_k A[i][k] * Bᵗ[j][k]
//
// This is the "K-last" layout: both A rows and Bᵗ rows are contiguous along
// k, so each output element is a dot product of two row reads.
//
// C is only added to, never overwritten; zero it first for a plain product.
// Overflow wraps. All three operands must share Size and PaddedSize, or
// ErrShape is returned before anything is written.
func MultiplyTransposed(a, bt, c *matrix.Matrix, opts Options) error {
	return ParallelMultiplyTransposed(nil, a, bt, c, opts)
}

// multiplyTileRows processes every tile whose top row lies in
// [rowStart, rowEnd). rowStart and rowEnd are multiples of tile, so the
// call writes exactly C rows [rowStart, rowEnd).
func multiplyTileRows(a, bt, c []int32, p, tile, rowStart, rowEnd int) {
	for y := rowStart; y < rowEnd; y += tile {
		for x := 0; x < p; x += tile {
			multiplyTile(a, bt, c, p, tile, y, x)
		}
	}
}

// multiplyTile accumulates the tile×tile block of C at (y, x).
//
// The K dimension is walked in Int32Lanes chunks. For each chunk and each
// (A row, Bᵗ row) pair of the tile, the lane products are reduced with the
// fixed pairwise tree of hwy.Int32x8.ReduceSum and added into C. The order
// of additions into each C element is therefore: chunk 0, chunk 1, ...
// regardless of tile size or partitioning.
func multiplyTile(a, bt, c []int32, p, tile, y, x int) {
	for step := 0; step < p; step += hwy.Int32Lanes {
		for ai := range tile {
			va := hwy.LoadInt32x8(a[(y+ai)*p+step:])
			cRow := c[(y+ai)*p+x : (y+ai)*p+x+tile]
			for bi := range cRow {
				vb := hwy.LoadInt32x8(bt[(x+bi)*p+step:])
				cRow[bi] += hwy.MulReduceSum(va, vb)
			}
		}
	}
}

// MultiplyReference computes A · B with a plain triple loop, no transpose,
// tiling or vectors. Overflow wraps, so the result is Σ_k A[i][k]·B[k][j]
// mod 2³². It exists to check the tiled kernels.
func MultiplyReference(a, b *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkOperands("reference multiply", a, b); err != nil {
		return nil, err
	}
	n := a.Size()
	c, err := matrix.NewWithAllocator(n, a.Allocator())
	if err != nil {
		return nil, err
	}
	for i := range n {
		aRow, cRow := a.Row(i), c.Row(i)
		for k := range n {
			aik := aRow[k]
			bRow := b.Row(k)
			for j := range n {
				cRow[j] += aik * bRow[j]
			}
		}
	}
	return c, nil
}

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

	"github.com/ajroetker/go-imatmul/matrix"
)

// Transpose returns a new matrix B with B[x][y] = A[y][x] for every
// 0 <= x, y < PaddedSize(), padding included. Zero padding transposes to zero
// padding. The result uses src's allocator; src is not modified.
func Transpose(src *matrix.Matrix) (*matrix.Matrix, error) {
	return ParallelTranspose(nil, src)
}

// TransposeInto writes the transpose of src into dst, which must have the
// same size. dst is fully overwritten, padding included. Transposing a matrix
// into itself is allowed and replaces its buffer.
func TransposeInto(src, dst *matrix.Matrix) error {
	return ParallelTransposeInto(nil, src, dst)
}

// transposeBlockRows transposes the destination block rows [rowStart, rowEnd)
// of a p×p matrix. rowStart and rowEnd are multiples of TransposeBlock.
// Each call writes only dst rows [rowStart, rowEnd).
func transposeBlockRows(src, dst []int32, p, rowStart, rowEnd int) {
	for y := rowStart; y < rowEnd; y += TransposeBlock {
		for x := 0; x < p; x += TransposeBlock {
			transposeBlock(src, dst, p, y, x)
		}
	}
}

// transposeBlock copies the TransposeBlock×TransposeBlock block of src at
// (row x, column y) into dst at (row y, column x), transposed.
func transposeBlock(src, dst []int32, p, y, x int) {
	for yy := y; yy < y+TransposeBlock; yy++ {
		d := dst[yy*p+x : yy*p+x+TransposeBlock]
		for i := range d {
			d[i] = src[(x+i)*p+yy]
		}
	}
}

func newLike(src *matrix.Matrix) (*matrix.Matrix, error) {
	dst, err := matrix.NewWithAllocator(src.Size(), src.Allocator())
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	return dst, nil
}

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

	"github.com/ajroetker/go-imatmul/hwy"
	"github.com/ajroetker/go-imatmul/matrix"
)

const (
	// TransposeBlock is the edge of the square blocks the transpose walks.
	// One block row is 16 int32 = 64 bytes, one cache line, so each block
	// touches 16 source lines and 16 destination lines.
	TransposeBlock = 16

	// DefaultTileSize is the edge of the output tiles the multiply walks.
	// An 8×8 tile keeps 8 A rows and 8 Bᵗ rows' current chunks hot while the
	// 64 accumulators are updated.
	DefaultTileSize = 8
)

// Options tunes the tiled multiply. The zero value uses the defaults.
type Options struct {
	// TileSize is the output tile edge. It must be a positive multiple of
	// hwy.Int32Lanes that divides matrix.PadMultiple (8 or 16). The result
	// does not depend on it.
	TileSize int
}

func (o Options) tileSize() int {
	if o.TileSize == 0 {
		return DefaultTileSize
	}
	return o.TileSize
}

// Validate reports whether the options can be used with any padded matrix.
func (o Options) Validate() error {
	ts := o.tileSize()
	if ts <= 0 || ts%hwy.Int32Lanes != 0 || matrix.PadMultiple%ts != 0 {
		return fmt.Errorf("%w: tile size %d must be a multiple of %d dividing %d",
			matrix.ErrShape, ts, hwy.Int32Lanes, matrix.PadMultiple)
	}
	return nil
}

// checkOperands verifies every operand is present and has the same logical
// and padded size, with padding compatible with the block sizes.
func checkOperands(op string, ms ...*matrix.Matrix) error {
	for i, m := range ms {
		if m == nil {
			return fmt.Errorf("%s: %w: operand %d is nil", op, matrix.ErrShape, i)
		}
	}
	first := ms[0]
	if first.PaddedSize()%matrix.PadMultiple != 0 || first.PaddedSize() < first.Size() {
		return fmt.Errorf("%s: %w: padded size %d is invalid for size %d",
			op, matrix.ErrShape, first.PaddedSize(), first.Size())
	}
	for i, m := range ms[1:] {
		if m.Size() != first.Size() || m.PaddedSize() != first.PaddedSize() {
			return fmt.Errorf("%s: %w: operand %d is %dx%d (padded %d), operand 0 is %dx%d (padded %d)",
				op, matrix.ErrShape, i+1, m.Size(), m.Size(), m.PaddedSize(),
				first.Size(), first.Size(), first.PaddedSize())
		}
	}
	return nil
}

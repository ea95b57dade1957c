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
	"github.com/ajroetker/go-imatmul/hwy/contrib/workerpool"
	"github.com/ajroetker/go-imatmul/matrix"
)

// ParallelTranspose is Transpose with the destination block rows statically
// partitioned across pool. A nil pool runs on the calling goroutine.
//
// Transpose is memory-bandwidth bound; splitting by destination rows keeps
// every worker's writes in its own cache lines.
func ParallelTranspose(pool *workerpool.Pool, src *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkOperands("transpose", src); err != nil {
		return nil, err
	}
	dst, err := newLike(src)
	if err != nil {
		return nil, err
	}
	transposeAll(pool, src, dst)
	return dst, nil
}

// ParallelTransposeInto is TransposeInto using pool.
func ParallelTransposeInto(pool *workerpool.Pool, src, dst *matrix.Matrix) error {
	if err := checkOperands("transpose", src, dst); err != nil {
		return err
	}
	if src == dst {
		// In-place would read blocks other workers are writing.
		dst2, err := newLike(src)
		if err != nil {
			return err
		}
		transposeAll(pool, src, dst2)
		return dst.MoveFrom(dst2)
	}
	transposeAll(pool, src, dst)
	return nil
}

func transposeAll(pool *workerpool.Pool, src, dst *matrix.Matrix) {
	p := src.PaddedSize()
	s, d := src.Data(), dst.Data()
	if pool == nil {
		transposeBlockRows(s, d, p, 0, p)
		return
	}
	pool.ParallelForBlocks(p, TransposeBlock, func(start, end int) {
		transposeBlockRows(s, d, p, start, end)
	})
}

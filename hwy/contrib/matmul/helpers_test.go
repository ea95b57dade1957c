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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-imatmul/matrix"
)

// randomMatrix fills the logical region with values drawn from [lo, hi).
func randomMatrix(t testing.TB, n int, seed uint64, lo, hi int32) *matrix.Matrix {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 42))
	m, err := matrix.New(n)
	require.NoError(t, err)
	span := int64(hi) - int64(lo)
	for i := range n {
		for j := range n {
			m.Set(i, j, int32(int64(lo)+rng.Int64N(span)))
		}
	}
	return m
}

// fullRangeMatrix fills the logical region with arbitrary int32 bit patterns
// so that products and sums overflow.
func fullRangeMatrix(t testing.TB, n int, seed uint64) *matrix.Matrix {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	m, err := matrix.New(n)
	require.NoError(t, err)
	for i := range n {
		for j := range n {
			m.Set(i, j, int32(rng.Uint32()))
		}
	}
	return m
}

func identity(t testing.TB, n int) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(n)
	require.NoError(t, err)
	for i := range n {
		m.Set(i, i, 1)
	}
	return m
}

// transposeReference is the naive element-by-element transpose over the
// padded buffer.
func transposeReference(src []int32, p int) []int32 {
	dst := make([]int32, len(src))
	for y := range p {
		for x := range p {
			dst[x*p+y] = src[y*p+x]
		}
	}
	return dst
}

// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-imatmul/matrix"
)

func TestPadSize(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 16}, {2, 16}, {15, 16}, {16, 16}, {17, 32}, {100, 112}, {2048, 2048},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matrix.PadSize(tt.n), "PadSize(%d)", tt.n)
	}
}

func TestNew(t *testing.T) {
	for _, n := range []int{0, 1, 2, 15, 16, 17, 33} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			m, err := matrix.New(n)
			require.NoError(t, err)
			defer m.Release()

			p := matrix.PadSize(n)
			assert.Equal(t, n, m.Size())
			assert.Equal(t, p, m.PaddedSize())
			assert.Zero(t, m.PaddedSize()%matrix.PadMultiple)
			assert.GreaterOrEqual(t, m.PaddedSize(), m.Size())
			assert.Len(t, m.Data(), p*p)
			assert.True(t, matrix.IsAligned(m.Data()), "buffer not %d-byte aligned", matrix.Alignment)
			for i, v := range m.Data() {
				if v != 0 {
					t.Fatalf("element %d = %d, want zero-filled", i, v)
				}
			}
			assert.True(t, m.PaddingIsZero())
		})
	}
}

func TestNewNegative(t *testing.T) {
	_, err := matrix.New(-1)
	require.ErrorIs(t, err, matrix.ErrAllocation)
}

func TestNewTooLarge(t *testing.T) {
	_, err := matrix.New(1 << 20)
	require.ErrorIs(t, err, matrix.ErrAllocation)
}

func TestAtSet(t *testing.T) {
	m, err := matrix.New(3)
	require.NoError(t, err)
	defer m.Release()

	m.Set(1, 2, 42)
	assert.Equal(t, int32(42), m.At(1, 2))
	assert.Equal(t, int32(42), m.Row(1)[2])
	assert.Equal(t, int32(42), m.Data()[1*m.PaddedSize()+2])

	assert.Panics(t, func() { m.Set(3, 0, 1) }, "padding row must not be writable through Set")
	assert.Panics(t, func() { m.At(0, -1) })
	assert.True(t, m.PaddingIsZero())
}

func TestFromRows(t *testing.T) {
	rows := [][]int32{{1, 2}, {3, 4}}
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)
	defer m.Release()

	assert.Equal(t, 2, m.Size())
	assert.Equal(t, 16, m.PaddedSize())
	if diff := cmp.Diff(rows, m.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, m.PaddingIsZero())

	_, err = matrix.FromRows([][]int32{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrShape)
	_, err = matrix.FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.ErrorIs(t, err, matrix.ErrShape)
}

func TestClear(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	defer m.Release()

	// Dirty the padding directly to check Clear covers the whole buffer.
	m.Data()[len(m.Data())-1] = 9
	require.False(t, m.PaddingIsZero())

	data := m.Data()
	m.Clear()
	assert.Same(t, &data[0], &m.Data()[0], "Clear must not reallocate")
	for i, v := range m.Data() {
		if v != 0 {
			t.Fatalf("element %d = %d after Clear", i, v)
		}
	}
	assert.True(t, m.PaddingIsZero())
}

func TestClone(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	defer m.Release()

	c, err := m.Clone()
	require.NoError(t, err)
	defer c.Release()

	assert.True(t, m.LogicalEqual(c))
	assert.NotSame(t, &m.Data()[0], &c.Data()[0])

	c.Set(0, 0, 100)
	assert.Equal(t, int32(1), m.At(0, 0), "clone must not share the buffer")
}

func TestCopyFrom(t *testing.T) {
	dst, err := matrix.New(5)
	require.NoError(t, err)
	defer dst.Release()
	src, err := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	defer src.Release()

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, 2, dst.Size())
	assert.True(t, dst.LogicalEqual(src))
	assert.False(t, src.Empty(), "copy assignment must leave the source intact")

	require.NoError(t, dst.CopyFrom(dst), "self assignment")
	assert.True(t, dst.LogicalEqual(src))
}

func TestTake(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	first := &m.Data()[0]

	moved := m.Take()
	defer moved.Release()

	assert.Same(t, first, &moved.Data()[0], "move must hand over the same buffer")
	assert.Equal(t, 2, moved.Size())
	assert.True(t, m.Empty())
	assert.Zero(t, m.Size())
	assert.Zero(t, m.PaddedSize())
	assert.Nil(t, m.Data())
	assert.NoError(t, m.Release(), "a moved-from matrix must still be releasable")
}

func TestMoveFrom(t *testing.T) {
	dst, err := matrix.New(4)
	require.NoError(t, err)
	defer dst.Release()
	src, err := matrix.FromRows([][]int32{{5, 6}, {7, 8}})
	require.NoError(t, err)
	defer src.Release()

	require.NoError(t, dst.MoveFrom(src))
	assert.Equal(t, [][]int32{{5, 6}, {7, 8}}, dst.Rows())
	assert.True(t, src.Empty())

	require.NoError(t, dst.MoveFrom(dst), "self move")
	assert.Equal(t, 2, dst.Size())
}

func TestReleaseIdempotent(t *testing.T) {
	m, err := matrix.New(8)
	require.NoError(t, err)
	require.NoError(t, m.Release())
	assert.True(t, m.Empty())
	require.NoError(t, m.Release())

	var nilMatrix *matrix.Matrix
	require.NoError(t, nilMatrix.Release())
}

func TestEmptyMatrix(t *testing.T) {
	m, err := matrix.New(0)
	require.NoError(t, err)
	defer m.Release()

	assert.Zero(t, m.Size())
	assert.Zero(t, m.PaddedSize())
	assert.Empty(t, m.Data())
	assert.Empty(t, m.Rows())
	assert.True(t, m.PaddingIsZero())
}

func TestLogicalEqualIgnoresPadding(t *testing.T) {
	a, err := matrix.FromRows([][]int32{{1}})
	require.NoError(t, err)
	defer a.Release()
	b, err := a.Clone()
	require.NoError(t, err)
	defer b.Release()

	b.Data()[1] = 3 // padding column of row 0
	assert.True(t, a.LogicalEqual(b))

	b.Set(0, 0, 2)
	assert.False(t, a.LogicalEqual(b))
}

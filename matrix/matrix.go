// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// PadMultiple is the granularity of the padded dimension. It matches both the
// transpose block (16 int32 = one 64-byte cache line) and two 8-lane vectors.
const PadMultiple = 16

// PadSize returns the smallest multiple of PadMultiple that is >= n.
func PadSize(n int) int {
	return (n + PadMultiple - 1) &^ (PadMultiple - 1)
}

// Matrix is an N×N int32 matrix stored row-major in a PadSize(N)² buffer.
//
// The zero value is an empty matrix (size 0, no buffer).
type Matrix struct {
	size   int
	padded int
	data   []int32
	alloc  Allocator
}

// New returns a zero-filled n×n matrix backed by HeapAllocator.
func New(n int) (*Matrix, error) {
	return NewWithAllocator(n, HeapAllocator)
}

// NewWithAllocator returns a zero-filled n×n matrix backed by alloc.
// A nil alloc means HeapAllocator.
func NewWithAllocator(n int, alloc Allocator) (*Matrix, error) {
	if alloc == nil {
		alloc = HeapAllocator
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative dimension %d", ErrAllocation, n)
	}
	padded := PadSize(n)
	if padded > 0 && padded > maxElems/padded {
		return nil, fmt.Errorf("%w: %dx%d matrix exceeds %d elements", ErrAllocation, padded, padded, maxElems)
	}

	data, err := alloc.Alloc(padded * padded)
	if err != nil {
		return nil, fmt.Errorf("allocating %dx%d matrix with %s allocator: %w", n, n, alloc.Name(), err)
	}
	if !IsAligned(data) {
		_ = alloc.Free(data)
		return nil, fmt.Errorf("%w: %s allocator returned a buffer not aligned to %d bytes", ErrAllocation, alloc.Name(), Alignment)
	}

	return &Matrix{size: n, padded: padded, data: data, alloc: alloc}, nil
}

// FromRows builds a matrix from a square row literal using HeapAllocator.
// Ragged or non-square input fails with ErrShape.
func FromRows(rows [][]int32) (*Matrix, error) {
	n := len(rows)
	if !lo.EveryBy(rows, func(r []int32) bool { return len(r) == n }) {
		return nil, fmt.Errorf("%w: rows are not %d wide", ErrShape, n)
	}

	m, err := New(n)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		copy(m.Row(i), r)
	}
	return m, nil
}

// Size returns the logical dimension N.
func (m *Matrix) Size() int { return m.size }

// PaddedSize returns the stored dimension, PadSize(Size()).
func (m *Matrix) PaddedSize() int { return m.padded }

// Data returns the full padded buffer, row-major with stride PaddedSize().
// The slice aliases the matrix and is invalid after Release or a move.
func (m *Matrix) Data() []int32 { return m.data }

// Allocator returns the allocator that owns the buffer.
func (m *Matrix) Allocator() Allocator { return m.alloc }

// Empty reports whether the matrix holds no buffer: a zero-size matrix, or one
// that was released or moved from.
func (m *Matrix) Empty() bool { return m.data == nil }

// Row returns padded row i (PaddedSize() elements; the tail past Size() is padding).
func (m *Matrix) Row(i int) []int32 {
	return m.data[i*m.padded : (i+1)*m.padded : (i+1)*m.padded]
}

// At returns element (i, j) of the logical region.
// Like slice indexing, an out-of-range index panics.
func (m *Matrix) At(i, j int) int32 {
	m.checkIndex(i, j)
	return m.data[i*m.padded+j]
}

// Set stores v at element (i, j) of the logical region.
// Padding cannot be written through Set.
func (m *Matrix) Set(i, j int, v int32) {
	m.checkIndex(i, j)
	m.data[i*m.padded+j] = v
}

func (m *Matrix) checkIndex(i, j int) {
	if uint(i) >= uint(m.size) || uint(j) >= uint(m.size) {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range for %dx%d matrix", i, j, m.size, m.size))
	}
}

// Clear sets every element, padding included, to zero in place.
func (m *Matrix) Clear() {
	clear(m.data)
}

// Clone returns a deep copy backed by a new buffer from the same allocator.
func (m *Matrix) Clone() (*Matrix, error) {
	c, err := NewWithAllocator(m.size, m.alloc)
	if err != nil {
		return nil, err
	}
	copy(c.data, m.data)
	return c, nil
}

// CopyFrom replaces the contents of m with a deep copy of src, taking src's
// allocator. The new buffer is allocated before the old one is released, so
// on error m is unchanged.
func (m *Matrix) CopyFrom(src *Matrix) error {
	if m == src {
		return nil
	}
	c, err := src.Clone()
	if err != nil {
		return err
	}
	if err := m.Release(); err != nil {
		_ = c.Release()
		return err
	}
	*m = *c.Take()
	return nil
}

// Take transfers the buffer to a new Matrix and leaves m empty. The cost does
// not depend on the matrix size. m may only be released afterwards.
func (m *Matrix) Take() *Matrix {
	out := &Matrix{size: m.size, padded: m.padded, data: m.data, alloc: m.alloc}
	m.reset()
	return out
}

// MoveFrom releases m's buffer and takes ownership of src's, leaving src empty.
// Moving a matrix onto itself is a no-op.
func (m *Matrix) MoveFrom(src *Matrix) error {
	if m == src {
		return nil
	}
	if err := m.Release(); err != nil {
		return err
	}
	*m = *src.Take()
	return nil
}

// Release returns the buffer to its allocator and leaves m empty.
// Releasing an empty matrix is a no-op, so Release is safe to defer even
// after a move.
func (m *Matrix) Release() error {
	if m == nil || m.data == nil {
		if m != nil {
			m.reset()
		}
		return nil
	}
	data, alloc := m.data, m.alloc
	m.reset()
	if err := alloc.Free(data); err != nil {
		return fmt.Errorf("releasing matrix buffer: %w", err)
	}
	return nil
}

func (m *Matrix) reset() {
	alloc := m.alloc
	*m = Matrix{alloc: alloc}
}

// PaddingIsZero reports whether every element outside the logical region is
// zero. The kernels rely on this; tests assert it after every operation.
func (m *Matrix) PaddingIsZero() bool {
	for i := range m.padded {
		row := m.Row(i)
		if i >= m.size {
			if slices.ContainsFunc(row, func(v int32) bool { return v != 0 }) {
				return false
			}
			continue
		}
		for _, v := range row[m.size:] {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// Rows returns a copy of the logical region as a slice of rows.
func (m *Matrix) Rows() [][]int32 {
	return lo.Times(m.size, func(i int) []int32 {
		return slices.Clone(m.Row(i)[:m.size])
	})
}

// LogicalEqual reports whether m and o have the same size and the same
// elements in the logical region. Padding is not compared.
func (m *Matrix) LogicalEqual(o *Matrix) bool {
	if m.size != o.size {
		return false
	}
	for i := range m.size {
		if !slices.Equal(m.Row(i)[:m.size], o.Row(i)[:o.size]) {
			return false
		}
	}
	return true
}

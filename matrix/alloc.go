// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"
	"unsafe"
)

const (
	// Alignment is the byte alignment of every matrix buffer: one 256-bit
	// vector, so row starts and 8-lane chunks never straddle a vector boundary.
	Alignment = 32

	// elemSize is the size in bytes of one matrix element.
	elemSize = int(unsafe.Sizeof(int32(0)))

	// maxElems bounds a single buffer so its byte size fits in an int on every
	// platform and a padded dimension stays representable in the file header.
	maxElems = min(math.MaxInt32, math.MaxInt/elemSize)
)

// Allocator hands out zero-filled, Alignment-aligned int32 buffers.
//
// Free must be called with exactly the slice Alloc returned. A Matrix records
// the Allocator that produced its buffer, so Release always uses the matching
// Free.
type Allocator interface {
	// Alloc returns a zero-filled buffer of n elements whose first element is
	// aligned to Alignment bytes. n == 0 returns a nil buffer.
	Alloc(n int) ([]int32, error)

	// Free releases a buffer previously returned by Alloc.
	Free(buf []int32) error

	// Name identifies the allocator in configuration and logs.
	Name() string
}

// HeapAllocator allocates from the Go heap. It over-allocates by one vector
// and re-slices at the first aligned element, so the garbage collector still
// owns the memory and Free only drops the reference.
var HeapAllocator Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Name() string { return "heap" }

func (heapAllocator) Alloc(n int) ([]int32, error) {
	if err := checkElems(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	slack := Alignment / elemSize
	raw := make([]int32, n+slack-1)

	// Offset (in elements) to the next Alignment boundary.
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := 0
	if mod := addr % Alignment; mod != 0 {
		offset = int(Alignment-mod) / elemSize
	}
	return raw[offset : offset+n : offset+n], nil
}

func (heapAllocator) Free([]int32) error { return nil }

func checkElems(n int) error {
	if n < 0 || n > maxElems {
		return fmt.Errorf("%w: %d elements", ErrAllocation, n)
	}
	return nil
}

// IsAligned reports whether the first element of buf sits on an Alignment
// boundary. Empty buffers are trivially aligned.
func IsAligned(buf []int32) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%Alignment == 0
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Allocator{
		HeapAllocator.Name(): HeapAllocator,
	}
)

// registerAllocator makes a platform allocator selectable by name.
func registerAllocator(a Allocator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[a.Name()] = a
}

// AllocatorByName returns the allocator registered under name ("heap", and
// "mmap" on unix systems).
func AllocatorByName(name string) (Allocator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("matrix: unknown allocator %q (available: %v)", name, slices.Sorted(maps.Keys(registry)))
	}
	return a, nil
}

// AllocatorNames lists the registered allocator names in sorted order.
func AllocatorNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

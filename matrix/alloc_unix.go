// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build unix

package matrix

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapAllocator maps anonymous private memory for each buffer. Mappings are
// page aligned (a multiple of Alignment) and zero-filled by the kernel, and
// are returned to the kernel with munmap on Free instead of waiting for the
// garbage collector. Large operands benefit from not being scanned or copied
// by the runtime.
var MmapAllocator Allocator = mmapAllocator{}

func init() {
	registerAllocator(MmapAllocator)
}

type mmapAllocator struct{}

func (mmapAllocator) Name() string { return "mmap" }

func (mmapAllocator) Alloc(n int) ([]int32, error) {
	if err := checkElems(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	mem, err := unix.Mmap(-1, 0, n*elemSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrAllocation, n*elemSize, err)
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&mem[0])), n), nil
}

func (mmapAllocator) Free(buf []int32) error {
	if len(buf) == 0 {
		return nil
	}
	// Rebuild the byte view of the original mapping; munmap needs the exact
	// start address and length Mmap returned.
	mem := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*elemSize)
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("matrix: munmap %d bytes: %w", len(mem), err)
	}
	return nil
}

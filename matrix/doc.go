// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix provides the padded, aligned int32 square matrix used by the
// multiplication kernels, and its binary file format.
//
// A Matrix of logical size N stores PadSize(N) × PadSize(N) elements, where
// PadSize rounds N up to a multiple of 16. Every element outside the logical
// N×N region is zero whenever a kernel or the codec reads the matrix, so tile
// loops never need boundary checks:
//
//	m, err := matrix.New(3) // 3x3 logical, 16x16 stored
//	m.Set(0, 0, 7)
//	row := m.Row(0)          // 16 elements, row[3:] is padding
//	defer m.Release()
//
// A Matrix owns its buffer. Clone and CopyFrom deep-copy; Take and MoveFrom
// hand the buffer over and leave the source empty. Release returns the buffer
// to the Allocator that produced it, exactly once.
//
// File format (little-endian):
//
//	offset 0: int32 N
//	offset 4: int32[N][N] row-major, no padding
package matrix

// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "errors"

// Every message is prefixed with "matrix:". Callers match with errors.Is;
// context (paths, sizes) is added with fmt.Errorf("...: %w", ErrX) at the
// detection site.
var (
	// ErrAllocation is returned when an aligned buffer request cannot be satisfied.
	ErrAllocation = errors.New("matrix: aligned allocation failed")

	// ErrIO is returned when a matrix file is missing, unreadable, truncated or
	// cannot be written. The wrapping message names the path.
	ErrIO = errors.New("matrix: i/o failure")

	// ErrShape is returned when operand sizes, padding or tile parameters do
	// not line up. It is always reported before any computation starts.
	ErrShape = errors.New("matrix: shape mismatch")
)

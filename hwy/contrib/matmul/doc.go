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

// Package matmul provides the cache-blocked, vector-chunked, multi-threaded
// int32 matrix multiplication kernels for matrix.Matrix operands.
//
// The product C = A · B is computed in two phases separated by a barrier:
//
//  1. Transpose B in 16×16 blocks, turning its column reads into row reads.
//  2. For each 8×8 tile of C, accumulate dot products of A rows and Bᵗ rows
//     in 8-lane chunks, each chunk reduced with a fixed pairwise tree.
//
// Example usage:
//
//	pool := workerpool.New(16)
//	defer pool.Close()
//
//	c, err := matmul.Multiply(pool, a, b, matmul.Options{})
//	if err != nil {
//		return err
//	}
//	defer c.Release()
//
// Callers running the phases themselves must keep the order: transpose B,
// then zero C, then ParallelMultiplyTransposed. The multiply only adds into C.
//
// Arithmetic is int32 with wraparound on overflow; no overflow is reported.
package matmul

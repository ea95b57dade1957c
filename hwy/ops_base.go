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

package hwy

// This file provides the pure Go implementations of the Int32x8 operations.
// Every loop has a constant trip count of Int32Lanes so the compiler can
// unroll it and drop bounds checks after the initial length check.

// LoadInt32x8 loads the first Int32Lanes elements of src.
// Panics if src is shorter than Int32Lanes.
func LoadInt32x8(src []int32) Int32x8 {
	return Int32x8(src[:Int32Lanes])
}

// Store writes the vector to the first Int32Lanes elements of dst.
// Panics if dst is shorter than Int32Lanes.
func Store(v Int32x8, dst []int32) {
	copy(dst[:Int32Lanes], v[:])
}

// Set creates a vector with all lanes set to the same value.
func Set(value int32) Int32x8 {
	var v Int32x8
	for i := range v {
		v[i] = value
	}
	return v
}

// Zero creates a vector with all lanes set to zero.
func Zero() Int32x8 {
	return Int32x8{}
}

// Add performs lane-wise wrapping addition.
func Add(a, b Int32x8) Int32x8 {
	var r Int32x8
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

// Mul performs lane-wise multiplication keeping the low 32 bits of each
// product (the VPMULLD semantics).
func Mul(a, b Int32x8) Int32x8 {
	var r Int32x8
	for i := range r {
		r[i] = a[i] * b[i]
	}
	return r
}

// ReduceSum sums all lanes with a fixed pairwise tree:
//
//	((v0+v1) + (v2+v3)) + ((v4+v5) + (v6+v7))
//
// The order is part of the contract; callers that compare against a reference
// under wraparound rely on it.
func (v Int32x8) ReduceSum() int32 {
	s01 := v[0] + v[1]
	s23 := v[2] + v[3]
	s45 := v[4] + v[5]
	s67 := v[6] + v[7]

	s0123 := s01 + s23
	s4567 := s45 + s67

	return s0123 + s4567
}

// ReduceSum sums all lanes of v. See Int32x8.ReduceSum for the order.
func ReduceSum(v Int32x8) int32 {
	return v.ReduceSum()
}

// MulReduceSum multiplies a and b lane-wise and reduces the products with
// ReduceSum. It is the inner step of an int32 dot product.
func MulReduceSum(a, b Int32x8) int32 {
	return Mul(a, b).ReduceSum()
}

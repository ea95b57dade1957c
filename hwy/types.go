// Package hwy provides the portable vector operations used by the integer
// matrix kernels, with runtime CPU detection for reporting which instruction
// set the kernels map onto.
//
// The kernels are written against a fixed 256-bit register shape: eight int32
// lanes. On AVX2 hardware each Int32x8 operation corresponds to a single
// instruction; elsewhere the compiler lowers the fixed-size array loops.
//
// Basic usage:
//
//	a := hwy.LoadInt32x8(row0[k:])
//	b := hwy.LoadInt32x8(row1[k:])
//	sum += hwy.Mul(a, b).ReduceSum()
package hwy

const (
	// VectorBytes is the register width, in bytes, the kernels are written for.
	VectorBytes = 32

	// Int32Lanes is the number of int32 lanes in one vector.
	Int32Lanes = VectorBytes / 4
)

// Int32x8 is a vector of eight int32 lanes.
//
// All arithmetic wraps on overflow, matching the packed-integer instructions
// (VPMULLD, VPADDD) it stands in for.
type Int32x8 [Int32Lanes]int32

// NumLanes returns the number of lanes in the vector.
func (v Int32x8) NumLanes() int {
	return Int32Lanes
}

// Data returns the lanes as a slice.
// This is primarily for testing and should not be used in performance-critical code.
func (v Int32x8) Data() []int32 {
	return v[:]
}

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

import (
	"os"
	"strconv"
)

//go:generate go tool stringer -type=DispatchLevel -linecomment

// DispatchLevel represents the SIMD instruction set the int32 kernels map onto.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go loops.
	DispatchScalar DispatchLevel = iota // scalar

	// DispatchSSE2 indicates 128-bit x86 vectors (SSE4.1 for PMULLD).
	DispatchSSE2 // sse2

	// DispatchAVX2 indicates AVX2 instructions (256-bit, one Int32x8 per register).
	DispatchAVX2 // avx2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512 // avx512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON // neon
)

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// RegistersPerInt32x8 returns how many hardware registers one Int32x8 spans
// at the current level: 1 on AVX2 and AVX-512, 2 on 128-bit targets, and 0
// in scalar mode.
func RegistersPerInt32x8() int {
	if currentLevel == DispatchScalar || currentWidth == 0 {
		return 0
	}
	return max(VectorBytes/currentWidth, 1)
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, detection reports scalar regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
}

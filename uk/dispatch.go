// Copyright 2026 go-ukernel Authors
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

package uk

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the instruction-set class detected at startup.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD capability, pure Go loops.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// CPUFeatures is a snapshot of the capability state a kernel selector
// consults. It is a plain value so tests can construct synthetic feature
// sets instead of depending on the host CPU.
type CPUFeatures struct {
	// Level is the instruction-set class.
	Level DispatchLevel

	// VectorWidth is the register width in bytes (16 for SSE2/NEON,
	// 32 for AVX2, 64 for AVX-512). Scalar mode reports 16 so lane
	// counts stay consistent across targets.
	VectorWidth int
}

// currentLevel is the detected level for this process.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// currentName is the human-readable name of the current level.
// Set by init() in dispatch_*.go files.
var currentName string

// DetectedFeatures returns the capability snapshot detected at init.
func DetectedFeatures() CPUFeatures {
	return CPUFeatures{Level: currentLevel, VectorWidth: currentWidth}
}

// CurrentLevel returns the instruction-set class being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector register width in bytes.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return currentName
}

// NoSimdEnv checks if the UK_NO_SIMD environment variable is set.
// When set, detection reports scalar regardless of CPU capabilities.
// Useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("UK_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns the number of lanes for type T at the current width.
//
// For example, with AVX2 (32 bytes):
//   - float32: 32/4 = 8 lanes
//   - int32: 32/4 = 8 lanes
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 0
	}
	return currentWidth / elementSize
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Keep 16-byte lane counts even in scalar mode
	currentName = "scalar"
}

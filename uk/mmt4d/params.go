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

package mmt4d

// Type identifies the (lhs, rhs, out) element-type tuple of an operation.
type Type uint32

const (
	// TypeF32F32F32 multiplies float32 operands into a float32 output.
	TypeF32F32F32 Type = iota

	// TypeI8I8I32 multiplies int8 operands, accumulating into int32.
	TypeI8I8I32
)

// String returns a human-readable name for the type tuple.
func (t Type) String() string {
	switch t {
	case TypeF32F32F32:
		return "f32f32f32"
	case TypeI8I8I32:
		return "i8i8i32"
	default:
		return "unknown"
	}
}

// Operation flags. Flags outside this set fail validation.
const (
	// FlagAccumulate adds tile results into the existing output contents
	// instead of overwriting them.
	FlagAccumulate uint32 = 1 << 0
)

// Params describes one mmt4d operation. It is caller-constructed and
// read-only to the engine; the buffers are caller-owned and must outlive
// the call. The engine allocates nothing and retains nothing.
type Params struct {
	// M, N, K are the tile-grid extents: the left operand is an M x K
	// grid of M0 x K0 tiles, the right operand an N x K grid of N0 x K0
	// tiles, the output an M x N grid of M0 x N0 tiles.
	M, N, K int64

	// M0, N0, K0 are the inner tile dimensions.
	M0, N0, K0 int32

	// Type selects the element-type tuple.
	Type Type

	// Flags is a subset of the Flag* bits.
	Flags uint32

	// Lhs, Rhs, Out are raw byte regions holding the tiled operands.
	// Tile kernels reinterpret them by element type; the caller must
	// size them to hold the full tiled matrices.
	Lhs, Rhs, Out []byte

	// LhsStride, RhsStride, OutStride are row pitches between successive
	// tile panels, in elements (not bytes).
	LhsStride, RhsStride, OutStride int64
}

// Element sizes are expressed as log2 shifts so stride-to-byte
// conversion in the loop nest is a shift, never a multiply.

func (t Type) lhsElemSizeLog2() int {
	switch t {
	case TypeI8I8I32:
		return 0
	default: // TypeF32F32F32
		return 2
	}
}

func (t Type) rhsElemSizeLog2() int {
	switch t {
	case TypeI8I8I32:
		return 0
	default: // TypeF32F32F32
		return 2
	}
}

func (t Type) outElemSizeLog2() int {
	// Both supported tuples produce 4-byte outputs.
	return 2
}

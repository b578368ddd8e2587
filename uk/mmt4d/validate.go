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

// outsideUintRange reports whether v falls outside [0, 2^bits). A negative
// value always fails the shift test via the explicit sign check.
func outsideUintRange(v int64, bits uint) bool {
	return v < 0 || v>>bits != 0
}

// validate rejects any descriptor that could lead to undefined arithmetic
// or unsupported numeric semantics, before any buffer is touched.
// Pure; no allocation.
func validate(p *Params) Status {
	if p.Flags&^FlagAccumulate != 0 {
		return StatusBadFlags
	}
	switch p.Type {
	case TypeF32F32F32, TypeI8I8I32:
	default:
		return StatusBadType
	}
	// The descriptor fields are int64 to be future-proof, but we enforce
	// narrower ranges so per-tile byte sizes and panel strides can never
	// overflow a 32-bit intermediate. K is the innermost (hottest) loop
	// bound; the ranges can be relaxed later if a target needs it.
	if outsideUintRange(p.M, 31) || outsideUintRange(p.N, 31) ||
		outsideUintRange(p.K, 31) || outsideUintRange(int64(p.M0), 15) ||
		outsideUintRange(int64(p.N0), 15) ||
		outsideUintRange(int64(p.K0), 15) {
		return StatusUnsupportedHugeOrNegativeDimension
	}
	return StatusOK
}

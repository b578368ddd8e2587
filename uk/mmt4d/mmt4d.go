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

// Mmt4d performs one tiled matrix multiplication described by p:
// validate, select a tile kernel, then drive the loop nest. Single-shot
// and stateless; on any non-OK status the output buffer is untouched.
func Mmt4d(p *Params) Status {
	return Mmt4dWithResolver(defaultResolver(), p)
}

// Mmt4dWithResolver is Mmt4d with an explicit kernel resolver, for
// embedders and tests that substitute provider chains.
func Mmt4dWithResolver(r *Resolver, p *Params) Status {
	if status := validate(p); status != StatusOK {
		return status
	}
	tileFunc, status := r.Resolve(p)
	if status != StatusOK {
		return status
	}
	mmt4dUsingTileFunc(p, tileFunc)
	return StatusOK
}

// mmt4dUsingTileFunc drives the outer loop nest, shared by every kernel.
// Only the inner tile is performance-critical, so one loop nest serves
// all types and shapes: offsets advance additively, with the per-call
// multiplies hoisted out of the loops.
func mmt4dUsingTileFunc(p *Params, tileFunc TileFunc) {
	m := p.M
	n := p.N
	k := p.K

	lhsLog2 := p.Type.lhsElemSizeLog2()
	rhsLog2 := p.Type.rhsElemSizeLog2()
	outLog2 := p.Type.outElemSizeLog2()

	outTileBytes := int64(p.M0) * int64(p.N0) << outLog2
	lhsPanelStride := p.LhsStride << lhsLog2
	rhsPanelStride := p.RhsStride << rhsLog2
	outRowStride := p.OutStride << outLog2

	var lhsOff, outRowOff int64
	for i := int64(0); i < m; i++ {
		outOff := outRowOff
		var rhsOff int64
		for j := int64(0); j < n; j++ {
			tileFunc(p.Out[outOff:], p.Lhs[lhsOff:], p.Rhs[rhsOff:], k, p.Flags, p)
			outOff += outTileBytes
			rhsOff += rhsPanelStride
		}
		outRowOff += outRowStride
		lhsOff += lhsPanelStride
	}
}

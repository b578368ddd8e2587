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

import "github.com/ajroetker/go-ukernel/uk/workerpool"

// The tile grid is embarrassingly parallel: output tiles are disjoint and
// the operand panels are read-only for the duration of the call, so outer
// rows can be distributed across workers with no synchronization beyond
// the completion barrier. Each row index is visited exactly once and the
// output bytes are identical to the sequential driver's.

// Mmt4dParallel is Mmt4d with the outer loop distributed over pool.
// Validation and kernel selection are unchanged; a nil pool or a grid too
// small to amortize dispatch runs sequentially.
func Mmt4dParallel(pool *workerpool.Pool, p *Params) Status {
	return Mmt4dParallelWithResolver(pool, defaultResolver(), p)
}

// Mmt4dParallelWithResolver is Mmt4dParallel with an explicit resolver.
func Mmt4dParallelWithResolver(pool *workerpool.Pool, r *Resolver, p *Params) Status {
	if status := validate(p); status != StatusOK {
		return status
	}
	tileFunc, status := r.Resolve(p)
	if status != StatusOK {
		return status
	}
	if pool == nil || p.M < 2 {
		mmt4dUsingTileFunc(p, tileFunc)
		return StatusOK
	}
	pool.ParallelFor(int(p.M), func(start, end int) {
		mmt4dRowRange(p, tileFunc, int64(start), int64(end))
	})
	return StatusOK
}

// mmt4dRowRange runs the loop nest over outer rows [iBegin, iEnd). One
// multiply per strip to land on the starting offsets, additive stepping
// from there, matching the sequential driver's order within the strip.
func mmt4dRowRange(p *Params, tileFunc TileFunc, iBegin, iEnd int64) {
	n := p.N
	k := p.K

	lhsLog2 := p.Type.lhsElemSizeLog2()
	rhsLog2 := p.Type.rhsElemSizeLog2()
	outLog2 := p.Type.outElemSizeLog2()

	outTileBytes := int64(p.M0) * int64(p.N0) << outLog2
	lhsPanelStride := p.LhsStride << lhsLog2
	rhsPanelStride := p.RhsStride << rhsLog2
	outRowStride := p.OutStride << outLog2

	lhsOff := iBegin * lhsPanelStride
	outRowOff := iBegin * outRowStride
	for i := iBegin; i < iEnd; i++ {
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

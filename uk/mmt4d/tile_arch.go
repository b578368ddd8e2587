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

import "github.com/ajroetker/go-ukernel/uk"

// Architecture-specific tile kernels, written against the uk lane
// abstraction. Two providers, best first: a rank-1 update kernel for the
// K0=1 tile shapes the data-tiling pass favors on vector targets, then
// dot-product kernels for reduction rows that fill whole vectors.
//
// Every kernel carries scalar tails, so the capability gates decide
// profitability only; a kernel selected under a synthetic feature set is
// still correct on any host.

// archTileFuncProviders returns the capability-gated provider list for
// the given feature snapshot, best first. Scalar mode gets none; the
// generic fallback handles everything there.
func archTileFuncProviders(feats uk.CPUFeatures) []TileFuncProvider {
	if feats.Level == uk.DispatchScalar {
		return nil
	}
	return []TileFuncProvider{
		rankOneTileFuncProvider{feats: feats},
		vecTileFuncProvider{feats: feats},
	}
}

// rankOneTileFuncProvider serves K0=1 f32 tiles whose rows fill whole
// vectors: each reduction step is a rank-1 update, one broadcast multiply
// per output row.
type rankOneTileFuncProvider struct {
	feats uk.CPUFeatures
}

func (pr rankOneTileFuncProvider) Select(p *Params) TileFunc {
	if p.Type != TypeF32F32F32 || p.K0 != 1 {
		return nil
	}
	lanes := pr.feats.VectorWidth / 4
	if lanes <= 1 || p.N0 <= 0 || int(p.N0)%lanes != 0 {
		return nil
	}
	return tileF32RankOne
}

func tileF32RankOne(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
	m0 := int(p.M0)
	n0 := int(p.N0)

	outT := f32view(out, m0*n0)
	lhsT := f32view(lhs, int(k)*m0)
	rhsT := f32view(rhs, int(k)*n0)

	if flags&FlagAccumulate == 0 {
		clear(outT)
	}

	lanes := uk.MaxLanes[float32]()
	for kk := 0; kk < int(k); kk++ {
		col := lhsT[kk*m0 : kk*m0+m0]
		row := rhsT[kk*n0 : kk*n0+n0]
		for i0 := 0; i0 < m0; i0++ {
			lv := uk.Set(col[i0])
			outRow := outT[i0*n0 : i0*n0+n0]
			var j0 int
			for j0 = 0; j0+lanes <= n0; j0 += lanes {
				acc := uk.MulAdd(lv, uk.Load(row[j0:]), uk.Load(outRow[j0:]))
				uk.Store(acc, outRow[j0:])
			}
			for ; j0 < n0; j0++ {
				outRow[j0] += col[i0] * row[j0]
			}
		}
	}
}

// vecTileFuncProvider serves dot-product kernels for any tile shape whose
// reduction rows (K0) fill whole vectors.
type vecTileFuncProvider struct {
	feats uk.CPUFeatures
}

func (pr vecTileFuncProvider) Select(p *Params) TileFunc {
	// int32 accumulators and f32 elements are both 4 bytes wide.
	lanes := pr.feats.VectorWidth / 4
	if lanes <= 1 || p.K0 <= 0 || int(p.K0)%lanes != 0 {
		return nil
	}
	switch p.Type {
	case TypeF32F32F32:
		return tileVecF32
	case TypeI8I8I32:
		return tileVecI8
	default:
		return nil
	}
}

func tileVecF32(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
	m0 := int(p.M0)
	n0 := int(p.N0)
	k0 := int(p.K0)

	outT := f32view(out, m0*n0)
	lhsT := f32view(lhs, int(k)*m0*k0)
	rhsT := f32view(rhs, int(k)*n0*k0)

	if flags&FlagAccumulate == 0 {
		clear(outT)
	}

	lanes := uk.MaxLanes[float32]()
	for kk := 0; kk < int(k); kk++ {
		lhsTile := lhsT[kk*m0*k0:]
		rhsTile := rhsT[kk*n0*k0:]
		for i0 := 0; i0 < m0; i0++ {
			lrow := lhsTile[i0*k0 : i0*k0+k0]
			for j0 := 0; j0 < n0; j0++ {
				rrow := rhsTile[j0*k0 : j0*k0+k0]
				acc := uk.Zero[float32]()
				var kk0 int
				for kk0 = 0; kk0+lanes <= k0; kk0 += lanes {
					acc = uk.MulAdd(uk.Load(lrow[kk0:]), uk.Load(rrow[kk0:]), acc)
				}
				sum := uk.ReduceSum(acc)
				for ; kk0 < k0; kk0++ {
					sum += lrow[kk0] * rrow[kk0]
				}
				outT[i0*n0+j0] += sum
			}
		}
	}
}

func tileVecI8(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
	m0 := int(p.M0)
	n0 := int(p.N0)
	k0 := int(p.K0)

	outT := i32view(out, m0*n0)
	lhsT := i8view(lhs, int(k)*m0*k0)
	rhsT := i8view(rhs, int(k)*n0*k0)

	if flags&FlagAccumulate == 0 {
		clear(outT)
	}

	lanes := uk.MaxLanes[int32]()

	// Widening buffers for one vector of each operand.
	lbuf := make([]int32, lanes)
	rbuf := make([]int32, lanes)

	for kk := 0; kk < int(k); kk++ {
		lhsTile := lhsT[kk*m0*k0:]
		rhsTile := rhsT[kk*n0*k0:]
		for i0 := 0; i0 < m0; i0++ {
			lrow := lhsTile[i0*k0 : i0*k0+k0]
			for j0 := 0; j0 < n0; j0++ {
				rrow := rhsTile[j0*k0 : j0*k0+k0]
				acc := uk.Zero[int32]()
				var kk0 int
				for kk0 = 0; kk0+lanes <= k0; kk0 += lanes {
					for lane := 0; lane < lanes; lane++ {
						lbuf[lane] = int32(lrow[kk0+lane])
						rbuf[lane] = int32(rrow[kk0+lane])
					}
					acc = uk.MulAdd(uk.Load(lbuf), uk.Load(rbuf), acc)
				}
				sum := uk.ReduceSum(acc)
				for ; kk0 < k0; kk0++ {
					sum += int32(lrow[kk0]) * int32(rrow[kk0])
				}
				outT[i0*n0+j0] += sum
			}
		}
	}
}

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

// The generic tile kernels handle any validated tile shape whose output
// tile fits the fixed scratch budget. They accumulate into a stack-local
// scratch tile and store once at the end, so the output is written exactly
// once per tile regardless of K.

// genericMaxTileBytes bounds the output-tile byte footprint the generic
// kernels accept. Larger tiles are expected to come from a target with an
// architecture kernel for them; refusing here surfaces as
// StatusUnsupportedGenericTileSize.
const genericMaxTileBytes = 4096

// genericTileFuncProvider is the terminal fallback provider.
type genericTileFuncProvider struct{}

func (genericTileFuncProvider) Select(p *Params) TileFunc {
	outTileBytes := int64(p.M0) * int64(p.N0) << p.Type.outElemSizeLog2()
	if outTileBytes > genericMaxTileBytes {
		return nil
	}
	switch p.Type {
	case TypeF32F32F32:
		return tileGenericF32
	case TypeI8I8I32:
		return tileGenericI8
	default:
		return nil
	}
}

func tileGenericF32(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
	m0 := int(p.M0)
	n0 := int(p.N0)
	k0 := int(p.K0)

	outT := f32view(out, m0*n0)
	lhsT := f32view(lhs, int(k)*m0*k0)
	rhsT := f32view(rhs, int(k)*n0*k0)

	var scratch [genericMaxTileBytes / 4]float32
	acc := scratch[:m0*n0]
	if flags&FlagAccumulate != 0 {
		copy(acc, outT)
	}

	for kk := 0; kk < int(k); kk++ {
		lhsTile := lhsT[kk*m0*k0:]
		rhsTile := rhsT[kk*n0*k0:]
		for i0 := 0; i0 < m0; i0++ {
			for j0 := 0; j0 < n0; j0++ {
				sum := acc[i0*n0+j0]
				for kk0 := 0; kk0 < k0; kk0++ {
					sum += lhsTile[i0*k0+kk0] * rhsTile[j0*k0+kk0]
				}
				acc[i0*n0+j0] = sum
			}
		}
	}

	copy(outT, acc)
}

func tileGenericI8(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
	m0 := int(p.M0)
	n0 := int(p.N0)
	k0 := int(p.K0)

	outT := i32view(out, m0*n0)
	lhsT := i8view(lhs, int(k)*m0*k0)
	rhsT := i8view(rhs, int(k)*n0*k0)

	var scratch [genericMaxTileBytes / 4]int32
	acc := scratch[:m0*n0]
	if flags&FlagAccumulate != 0 {
		copy(acc, outT)
	}

	for kk := 0; kk < int(k); kk++ {
		lhsTile := lhsT[kk*m0*k0:]
		rhsTile := rhsT[kk*n0*k0:]
		for i0 := 0; i0 < m0; i0++ {
			for j0 := 0; j0 < n0; j0++ {
				sum := acc[i0*n0+j0]
				for kk0 := 0; kk0 < k0; kk0++ {
					sum += int32(lhsTile[i0*k0+kk0]) * int32(rhsTile[j0*k0+kk0])
				}
				acc[i0*n0+j0] = sum
			}
		}
	}

	copy(outT, acc)
}

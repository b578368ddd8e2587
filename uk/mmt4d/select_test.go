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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-ukernel/uk"
)

// stubProvider claims support for everything and records selection, and
// its tile kernel stamps a marker so execution is attributable.
type stubProvider struct {
	selected int
	executed int
}

func (s *stubProvider) Select(p *Params) TileFunc {
	s.selected++
	return func(out, lhs, rhs []byte, k int64, flags uint32, p *Params) {
		s.executed++
		outT := f32view(out, int(p.M0)*int(p.N0))
		for i := range outT {
			outT[i] = 99
		}
	}
}

// decliningProvider never has a kernel.
type decliningProvider struct{ queried int }

func (d *decliningProvider) Select(p *Params) TileFunc {
	d.queried++
	return nil
}

func TestResolverPrefersArchOverGeneric(t *testing.T) {
	// Both the stub arch provider and the generic fallback support this
	// shape; the arch provider must win.
	stub := &stubProvider{}
	r := &Resolver{
		Arch:    []TileFuncProvider{stub},
		Generic: genericTileFuncProvider{},
	}

	p, out := smallValidParams()
	require.Equal(t, StatusOK, Mmt4dWithResolver(r, p))
	require.Equal(t, 1, stub.selected)
	require.Equal(t, int(p.M*p.N), stub.executed)

	outT := f32view(out, 16)
	for i := range outT {
		require.Equal(t, float32(99), outT[i])
	}
}

func TestResolverArchOrderIsPriority(t *testing.T) {
	// The first arch provider that claims support wins; later ones are
	// never consulted.
	first := &stubProvider{}
	second := &stubProvider{}
	r := &Resolver{
		Arch:    []TileFuncProvider{first, second},
		Generic: genericTileFuncProvider{},
	}

	p, _ := smallValidParams()
	require.Equal(t, StatusOK, Mmt4dWithResolver(r, p))
	require.Equal(t, 1, first.selected)
	require.Zero(t, second.selected)
}

func TestResolverFallsThroughDecliners(t *testing.T) {
	declined := &decliningProvider{}
	r := &Resolver{
		Arch:    []TileFuncProvider{declined},
		Generic: genericTileFuncProvider{},
	}

	p, _ := smallValidParams()
	require.Equal(t, StatusOK, Mmt4dWithResolver(r, p))
	require.Equal(t, 1, declined.queried)
}

func TestResolverGenericTileBudget(t *testing.T) {
	// 64x64 f32 out tile is 16KiB, over the generic budget, and with no
	// arch providers resolution must fail before any tile executes.
	r := NewResolver(uk.CPUFeatures{Level: uk.DispatchScalar, VectorWidth: 16})
	require.Empty(t, r.Arch)

	lhs := make([]byte, 64*2*4)
	rhs := make([]byte, 64*2*4)
	out := make([]byte, 64*64*4)
	for i := range out {
		out[i] = 0xCD
	}
	p := &Params{
		M: 1, N: 1, K: 1, M0: 64, N0: 64, K0: 2,
		Type: TypeF32F32F32,
		Lhs:  lhs, Rhs: rhs, Out: out,
		LhsStride: 128, RhsStride: 128, OutStride: 64 * 64,
	}

	require.Equal(t, StatusUnsupportedGenericTileSize, Mmt4dWithResolver(r, p))
	for i := range out {
		require.Equal(t, byte(0xCD), out[i], "out[%d] modified on refusal", i)
	}
}

func TestResolverArchHandlesOverBudgetTiles(t *testing.T) {
	// The same over-budget tile resolves fine when an arch kernel
	// matches: the budget binds only the generic fallback.
	r := NewResolver(uk.CPUFeatures{Level: uk.DispatchAVX2, VectorWidth: 32})
	p := &Params{
		M: 0, N: 0, K: 0, M0: 64, N0: 64, K0: 1,
		Type: TypeF32F32F32,
	}
	fn, status := r.Resolve(p)
	require.Equal(t, StatusOK, status)
	require.NotNil(t, fn)
}

func TestResolverCapabilityGates(t *testing.T) {
	shape := &Params{M0: 8, N0: 8, K0: 1, Type: TypeF32F32F32}

	// Scalar feature sets get no arch providers at all.
	scalar := NewResolver(uk.CPUFeatures{Level: uk.DispatchScalar, VectorWidth: 16})
	require.Empty(t, scalar.Arch)

	// Vector feature sets get the full chain.
	avx2 := NewResolver(uk.CPUFeatures{Level: uk.DispatchAVX2, VectorWidth: 32})
	require.Len(t, avx2.Arch, 2)

	fn, status := avx2.Resolve(shape)
	require.Equal(t, StatusOK, status)
	require.NotNil(t, fn)
}

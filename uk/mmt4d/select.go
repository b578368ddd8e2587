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
	"sync"

	"github.com/ajroetker/go-ukernel/uk"
)

// TileFunc computes one complete output tile. out, lhs and rhs start at
// the tile/panel origins within the caller's buffers; k is the reduction
// length in K0-units. A TileFunc must write exactly M0 x N0 output
// elements, honoring FlagAccumulate, and must not touch memory outside
// its own tile and panels. It is total over validated inputs: once
// selected, it cannot fail.
type TileFunc func(out, lhs, rhs []byte, k int64, flags uint32, p *Params)

// TileFuncProvider is one source of tile kernels. Select returns nil when
// the provider has no kernel for the descriptor's type and tile shape.
//
// Providers are queried in priority order: every architecture-specific
// provider strictly dominates the generic one, and a provider list is
// itself responsible for ordering its own variants best-first.
type TileFuncProvider interface {
	Select(p *Params) TileFunc
}

// Resolver picks one tile kernel for an entire operation. The zero value
// has no providers; use NewResolver for the standard chain.
type Resolver struct {
	// Arch holds capability-gated providers, best first.
	Arch []TileFuncProvider

	// Generic is the terminal fallback. It must handle any validated
	// tile shape within its scratch budget; refusal is the only failure
	// mode left at this stage.
	Generic TileFuncProvider
}

// NewResolver builds the standard provider chain for the given capability
// snapshot. Passing a synthetic uk.CPUFeatures substitutes the hardware
// state, which keeps resolution deterministic under test.
func NewResolver(feats uk.CPUFeatures) *Resolver {
	return &Resolver{
		Arch:    archTileFuncProviders(feats),
		Generic: genericTileFuncProvider{},
	}
}

// Resolve selects the tile kernel to use for p. It assumes p has already
// passed validation and does not re-validate; the only remaining failure
// is StatusUnsupportedGenericTileSize when both the architecture
// providers and the generic fallback decline.
func (r *Resolver) Resolve(p *Params) (TileFunc, Status) {
	for _, provider := range r.Arch {
		if fn := provider.Select(p); fn != nil {
			return fn, StatusOK
		}
	}
	if r.Generic != nil {
		if fn := r.Generic.Select(p); fn != nil {
			return fn, StatusOK
		}
	}
	return nil, StatusUnsupportedGenericTileSize
}

var (
	defaultResolverOnce sync.Once
	defaultResolverInst *Resolver
)

// defaultResolver returns the process-wide resolver bound to the detected
// CPU features. Built lazily so UK_NO_SIMD and test overrides observe the
// same state the uk package settled on at init.
func defaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolverInst = NewResolver(uk.DetectedFeatures())
	})
	return defaultResolverInst
}

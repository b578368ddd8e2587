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

// Package mmt4d implements the tiled matrix-multiplication micro-kernel
// engine: it validates an operation's parameters, selects an inner tile
// kernel for the host CPU and numeric type, and drives the outer loop nest
// that applies that kernel to every output tile.
//
// The operands are pre-tiled 4D layouts. The left operand is an M x K grid
// of M0 x K0 tiles, the right operand an N x K grid of N0 x K0 tiles (each
// tile row is a right-operand column), and the output an M x N grid of
// M0 x N0 tiles. An invocation is a single stateless transaction:
//
//	p := &mmt4d.Params{
//	    M: 1, N: 1, K: 1, M0: 2, N0: 2, K0: 2,
//	    Type:      mmt4d.TypeF32F32F32,
//	    Lhs:       lhs, Rhs: rhs, Out: out,
//	    LhsStride: 4, RhsStride: 4, OutStride: 4,
//	}
//	if st := mmt4d.Mmt4d(p); st != mmt4d.StatusOK {
//	    return errors.New(st.Message())
//	}
//
// Buffers are caller-owned raw byte regions; strides are in elements of
// the operand's type and converted to bytes internally. Kernel selection
// prefers architecture-specific tile kernels and falls back to a generic
// implementation that handles any validated tile shape up to a fixed
// scratch budget.
//
// The engine never writes to the output buffer on any failure path:
// validation and kernel selection complete before the first tile executes.
package mmt4d

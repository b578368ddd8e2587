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

// Command ukinfo is a diagnostic tool for the micro-kernel engine: it
// prints the CPU features the dispatcher detected and can run an mmt4d
// operation against a naive reference to sanity-check a host.
package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"unsafe"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-ukernel/uk"
	"github.com/ajroetker/go-ukernel/uk/mmt4d"
)

func main() {
	root := &cobra.Command{
		Use:           "ukinfo",
		Short:         "micro-kernel engine diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(featuresCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ukinfo:", err)
		os.Exit(1)
	}
}

func featuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "print detected CPU features and the active dispatch level",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("GOOS: %s\n", runtime.GOOS)
			fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
			fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
			fmt.Println()

			feats := uk.DetectedFeatures()
			fmt.Printf("Dispatch level: %s\n", feats.Level)
			fmt.Printf("Vector width: %d bytes\n", feats.VectorWidth)
			fmt.Println()

			switch runtime.GOARCH {
			case "amd64":
				fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
				fmt.Printf("  HasSSE2:     %v\n", cpu.X86.HasSSE2)
				fmt.Printf("  HasAVX2:     %v\n", cpu.X86.HasAVX2)
				fmt.Printf("  HasFMA:      %v\n", cpu.X86.HasFMA)
				fmt.Printf("  HasAVX512F:  %v\n", cpu.X86.HasAVX512F)
				fmt.Printf("  HasAVX512BW: %v\n", cpu.X86.HasAVX512BW)
				fmt.Printf("  HasAVX512VL: %v\n", cpu.X86.HasAVX512VL)
			case "arm64":
				fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
				fmt.Printf("  HasASIMD: %v (NEON baseline)\n", cpu.ARM64.HasASIMD)
				fmt.Printf("  HasFP:    %v\n", cpu.ARM64.HasFP)
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	var (
		m, n, k    int64
		m0, n0, k0 int32
		typeName   string
		accumulate bool
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "run one mmt4d against a naive reference and report the max error",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch typeName {
			case "f32f32f32":
				return checkF32(m, n, k, m0, n0, k0, accumulate, seed)
			case "i8i8i32":
				return checkI8(m, n, k, m0, n0, k0, accumulate, seed)
			default:
				return fmt.Errorf("unknown type %q (want f32f32f32 or i8i8i32)", typeName)
			}
		},
	}

	cmd.Flags().Int64Var(&m, "m", 4, "output tile rows")
	cmd.Flags().Int64Var(&n, "n", 4, "output tile columns")
	cmd.Flags().Int64Var(&k, "k", 8, "reduction tiles")
	cmd.Flags().Int32Var(&m0, "m0", 8, "tile rows")
	cmd.Flags().Int32Var(&n0, "n0", 8, "tile columns")
	cmd.Flags().Int32Var(&k0, "k0", 1, "tile reduction depth")
	cmd.Flags().StringVar(&typeName, "type", "f32f32f32", "element type tuple")
	cmd.Flags().BoolVar(&accumulate, "accumulate", false, "set the accumulate flag")
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed for operand data")
	return cmd
}

func checkF32(m, n, k int64, m0, n0, k0 int32, accumulate bool, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	lhs := make([]float32, m*k*int64(m0)*int64(k0))
	rhs := make([]float32, n*k*int64(n0)*int64(k0))
	out := make([]float32, m*n*int64(m0)*int64(n0))
	for i := range lhs {
		lhs[i] = rng.Float32()*2 - 1
	}
	for i := range rhs {
		rhs[i] = rng.Float32()*2 - 1
	}
	want := make([]float32, len(out))
	if accumulate {
		for i := range out {
			out[i] = rng.Float32()
			want[i] = out[i]
		}
	}
	referenceF32(lhs, rhs, want, m, n, k, m0, n0, k0)

	p := &mmt4d.Params{
		M: m, N: n, K: k, M0: m0, N0: n0, K0: k0,
		Type:      mmt4d.TypeF32F32F32,
		Lhs:       f32bytes(lhs),
		Rhs:       f32bytes(rhs),
		Out:       f32bytes(out),
		LhsStride: k * int64(m0) * int64(k0),
		RhsStride: k * int64(n0) * int64(k0),
		OutStride: n * int64(m0) * int64(n0),
	}
	if accumulate {
		p.Flags = mmt4d.FlagAccumulate
	}
	if st := mmt4d.Mmt4d(p); st != mmt4d.StatusOK {
		return errors.New(st.Message())
	}

	var maxErr float64
	for i := range out {
		if e := math.Abs(float64(out[i] - want[i])); e > maxErr {
			maxErr = e
		}
	}
	fmt.Printf("f32f32f32 %dx%dx%d tiles of %dx%dx%d: max abs error %.3g\n",
		m, n, k, m0, n0, k0, maxErr)
	return nil
}

func checkI8(m, n, k int64, m0, n0, k0 int32, accumulate bool, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	lhs := make([]int8, m*k*int64(m0)*int64(k0))
	rhs := make([]int8, n*k*int64(n0)*int64(k0))
	out := make([]int32, m*n*int64(m0)*int64(n0))
	for i := range lhs {
		lhs[i] = int8(rng.Intn(256) - 128)
	}
	for i := range rhs {
		rhs[i] = int8(rng.Intn(256) - 128)
	}
	want := make([]int32, len(out))
	if accumulate {
		for i := range out {
			out[i] = int32(rng.Intn(100))
			want[i] = out[i]
		}
	}
	referenceI8(lhs, rhs, want, m, n, k, m0, n0, k0)

	p := &mmt4d.Params{
		M: m, N: n, K: k, M0: m0, N0: n0, K0: k0,
		Type:      mmt4d.TypeI8I8I32,
		Lhs:       i8bytes(lhs),
		Rhs:       i8bytes(rhs),
		Out:       i32bytes(out),
		LhsStride: k * int64(m0) * int64(k0),
		RhsStride: k * int64(n0) * int64(k0),
		OutStride: n * int64(m0) * int64(n0),
	}
	if accumulate {
		p.Flags = mmt4d.FlagAccumulate
	}
	if st := mmt4d.Mmt4d(p); st != mmt4d.StatusOK {
		return errors.New(st.Message())
	}

	mismatches := 0
	for i := range out {
		if out[i] != want[i] {
			mismatches++
		}
	}
	fmt.Printf("i8i8i32 %dx%dx%d tiles of %dx%dx%d: %d mismatched elements\n",
		m, n, k, m0, n0, k0, mismatches)
	if mismatches > 0 {
		return errors.New("integer results diverged from reference")
	}
	return nil
}

// referenceF32 adds the naive tiled product into want.
func referenceF32(lhs, rhs, want []float32, m, n, k int64, m0, n0, k0 int32) {
	for i := int64(0); i < m; i++ {
		for j := int64(0); j < n; j++ {
			for i0 := int64(0); i0 < int64(m0); i0++ {
				for j0 := int64(0); j0 < int64(n0); j0++ {
					var sum float32
					for kk := int64(0); kk < k; kk++ {
						lhsTile := (i*k + kk) * int64(m0) * int64(k0)
						rhsTile := (j*k + kk) * int64(n0) * int64(k0)
						for kk0 := int64(0); kk0 < int64(k0); kk0++ {
							sum += lhs[lhsTile+i0*int64(k0)+kk0] * rhs[rhsTile+j0*int64(k0)+kk0]
						}
					}
					want[(i*n+j)*int64(m0)*int64(n0)+i0*int64(n0)+j0] += sum
				}
			}
		}
	}
}

// referenceI8 adds the naive tiled product into want.
func referenceI8(lhs, rhs []int8, want []int32, m, n, k int64, m0, n0, k0 int32) {
	for i := int64(0); i < m; i++ {
		for j := int64(0); j < n; j++ {
			for i0 := int64(0); i0 < int64(m0); i0++ {
				for j0 := int64(0); j0 < int64(n0); j0++ {
					var sum int32
					for kk := int64(0); kk < k; kk++ {
						lhsTile := (i*k + kk) * int64(m0) * int64(k0)
						rhsTile := (j*k + kk) * int64(n0) * int64(k0)
						for kk0 := int64(0); kk0 < int64(k0); kk0++ {
							sum += int32(lhs[lhsTile+i0*int64(k0)+kk0]) * int32(rhs[rhsTile+j0*int64(k0)+kk0])
						}
					}
					want[(i*n+j)*int64(m0)*int64(n0)+i0*int64(n0)+j0] += sum
				}
			}
		}
	}
}

func f32bytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*4)
}

func i8bytes(s []int8) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

func i32bytes(s []int32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*4)
}

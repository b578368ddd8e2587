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

package uk

import "testing"

func TestLoadStoreRoundTrip(t *testing.T) {
	src := make([]float32, MaxLanes[float32]())
	for i := range src {
		src[i] = float32(i) + 0.5
	}

	v := Load(src)
	if v.NumLanes() != len(src) {
		t.Fatalf("NumLanes() = %d, want %d", v.NumLanes(), len(src))
	}

	dst := make([]float32, len(src))
	Store(v, dst)
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestLoadShortSlice(t *testing.T) {
	src := []float32{1, 2}
	v := Load(src)
	if v.NumLanes() != 2 {
		t.Errorf("NumLanes() = %d, want 2", v.NumLanes())
	}
}

func TestSetZero(t *testing.T) {
	v := Set(float32(3))
	for i, x := range v.Data() {
		if x != 3 {
			t.Errorf("Set lane %d = %v, want 3", i, x)
		}
	}

	z := Zero[int32]()
	for i, x := range z.Data() {
		if x != 0 {
			t.Errorf("Zero lane %d = %v, want 0", i, x)
		}
	}
}

func TestMulAdd(t *testing.T) {
	lanes := MaxLanes[float32]()
	a := make([]float32, lanes)
	b := make([]float32, lanes)
	c := make([]float32, lanes)
	for i := range a {
		a[i] = float32(i)
		b[i] = 2
		c[i] = 1
	}

	got := MulAdd(Load(a), Load(b), Load(c))
	for i, x := range got.Data() {
		want := float32(i)*2 + 1
		if x != want {
			t.Errorf("MulAdd lane %d = %v, want %v", i, x, want)
		}
	}
}

func TestReduceSum(t *testing.T) {
	lanes := MaxLanes[int32]()
	src := make([]int32, lanes)
	var want int32
	for i := range src {
		src[i] = int32(i + 1)
		want += int32(i + 1)
	}

	if got := ReduceSum(Load(src)); got != want {
		t.Errorf("ReduceSum = %d, want %d", got, want)
	}
}

func TestDetectedFeaturesConsistent(t *testing.T) {
	feats := DetectedFeatures()
	if feats.Level != CurrentLevel() {
		t.Errorf("feats.Level = %v, CurrentLevel() = %v", feats.Level, CurrentLevel())
	}
	if feats.VectorWidth != CurrentWidth() {
		t.Errorf("feats.VectorWidth = %d, CurrentWidth() = %d", feats.VectorWidth, CurrentWidth())
	}
	if feats.VectorWidth < 16 {
		t.Errorf("VectorWidth = %d, want >= 16", feats.VectorWidth)
	}
	if CurrentName() == "" {
		t.Error("CurrentName() is empty")
	}
}

func TestDispatchLevelString(t *testing.T) {
	levels := []DispatchLevel{
		DispatchScalar, DispatchSSE2, DispatchAVX2, DispatchAVX512, DispatchNEON,
	}
	for _, level := range levels {
		if level.String() == "unknown" || level.String() == "" {
			t.Errorf("DispatchLevel(%d).String() = %q", level, level.String())
		}
	}
	if DispatchLevel(99).String() != "unknown" {
		t.Errorf("DispatchLevel(99).String() = %q, want %q", DispatchLevel(99).String(), "unknown")
	}
}

func TestMaxLanesByWidth(t *testing.T) {
	width := CurrentWidth()
	if got := MaxLanes[float32](); got != width/4 {
		t.Errorf("MaxLanes[float32]() = %d, want %d", got, width/4)
	}
	if got := MaxLanes[float64](); got != width/8 {
		t.Errorf("MaxLanes[float64]() = %d, want %d", got, width/8)
	}
	if got := MaxLanes[int8](); got != width {
		t.Errorf("MaxLanes[int8]() = %d, want %d", got, width)
	}
}

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

// Status is the closed result vocabulary of the engine. All failures are
// reported synchronously as a Status; nothing panics on malformed input
// and no error can occur after the first tile has executed.
type Status int

const (
	// StatusOK indicates the operation completed.
	StatusOK Status = iota

	// StatusBadFlags indicates Flags held bits outside the defined set.
	StatusBadFlags

	// StatusBadType indicates an unsupported element-type tuple.
	StatusBadType

	// StatusUnsupportedHugeOrNegativeDimension indicates a grid or tile
	// dimension outside the validated range.
	StatusUnsupportedHugeOrNegativeDimension

	// StatusUnsupportedGenericTileSize indicates no architecture kernel
	// matched and the tile shape exceeds the generic kernel's budget.
	StatusUnsupportedGenericTileSize
)

// Message returns a fixed diagnostic string for every defined status and
// "unknown" for anything else, so callers can render any integer value
// without crashing on enum skew.
func (s Status) Message() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadFlags:
		return "bad mmt4d flags"
	case StatusBadType:
		return "bad mmt4d type enum"
	case StatusUnsupportedHugeOrNegativeDimension:
		return "unsupported huge or negative size in mmt4d"
	case StatusUnsupportedGenericTileSize:
		return "tile size too large for the generic tile implementation"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return s.Message()
}

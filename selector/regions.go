// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// regions.go — the three pen-offset sampling regions.
//
// Main is [effective_min, d_max] minus the excluded bands; Mid bridges the top
// of Main and the diff band; Diff surrounds a = |R−r|. A draw u ∈ [0,1) picks
// a region by cumulative weight; an unavailable region is replaced by the
// first available entry of its fallback list in regionTable.

package selector

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvspiro/interval"
)

// Region is a pen-offset sampling region. RegionNone marks an unshaped draw.
type Region int

const (
	RegionNone Region = iota
	RegionMain
	RegionMid
	RegionDiff
	regionCount
)

// regionTable lists the name and the substitution order of every region.
var regionTable = [regionCount]struct {
	name      string
	fallbacks [2]Region
}{
	RegionNone: {name: "none"},
	RegionMain: {name: "r_scaled", fallbacks: [2]Region{RegionMid, RegionDiff}},
	RegionMid:  {name: "mid_band", fallbacks: [2]Region{RegionMain, RegionDiff}},
	RegionDiff: {name: "diff_band", fallbacks: [2]Region{RegionMid, RegionMain}},
}

// String returns the region name used in traces.
func (r Region) String() string {
	if r < 0 || r >= regionCount {
		return fmt.Sprintf("Region(%d)", int(r))
	}

	return regionTable[r].name
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(b []byte) error {
	for i, row := range regionTable {
		if strings.EqualFold(string(b), row.name) {
			*r = Region(i)
			return nil
		}
	}

	return fmt.Errorf("selector: unknown region %q", b)
}

// Weights are the normalized region probabilities.
type Weights struct {
	Main float64 `json:"w_r"`
	Mid  float64 `json:"w_mid"`
	Diff float64 `json:"w_diff"`
}

// regionWeights interpolates the weights at ratio_t and normalizes them.
func regionWeights(ratioT float64, sh Shaping) Weights {
	w := Weights{
		Main: sh.MainWeight.At(ratioT),
		Diff: sh.DiffWeight.At(ratioT),
	}
	w.Mid = max(0, 1-(w.Main+w.Diff))

	if sum := w.Main + w.Mid + w.Diff; sum > 0 {
		w.Main /= sum
		w.Mid /= sum
		w.Diff /= sum
	}

	return w
}

// pick maps u ∈ [0,1) to a region by cumulative weight.
func (w Weights) pick(u float64) Region {
	switch {
	case u < w.Main:
		return RegionMain
	case u < w.Main+w.Mid:
		return RegionMid
	default:
		return RegionDiff
	}
}

// regionSet holds the candidate range of every region; the RegionNone slot
// is unused.
type regionSet [regionCount]interval.Interval

// available reports whether region r can be drawn from. Main is judged on
// [d_min, d_max] rather than on its banded remainder, which has its own
// full-range fallback.
func (rs regionSet) available(r Region) bool {
	return !rs[r].Empty()
}

// resolve returns want if available, otherwise its first available
// substitute, otherwise want itself.
func (rs regionSet) resolve(want Region) Region {
	if rs.available(want) {
		return want
	}
	for _, alt := range regionTable[want].fallbacks {
		if rs.available(alt) {
			return alt
		}
	}

	return want
}

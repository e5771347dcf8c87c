// SPDX-License-Identifier: MIT
// Package: lvspiro/interval
//
// draw.go — random draws over intervals and unions.

package interval

import (
	"sort"

	"github.com/katalvlaran/lvspiro/rng"
)

// maxBiasedMembers caps how many members take part in a biased draw.
const maxBiasedMembers = 3

// Draw returns a uniform integer inside iv. The caller guarantees !iv.Empty().
func Draw(src rng.Source, iv Interval) int {
	return rng.Between(src, iv.Lo, iv.Hi)
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	return x
}

// DrawWithHighBias draws from u preferring the member with the largest upper
// bound with probability highPref. It returns ok=false for an empty union so
// the caller can choose its own fallback range.
//
// Complexity: O(k log k) for k members (k is tiny in practice).
func DrawWithHighBias(src rng.Source, u Union, highPref float64) (v int, ok bool) {
	clean := u.Clean()
	switch len(clean) {
	case 0:
		return 0, false
	case 1:
		return Draw(src, clean[0]), true
	}

	// Order by upper bound; the "high" member is last.
	sort.SliceStable(clean, func(i, j int) bool {
		if clean[i].Hi != clean[j].Hi {
			return clean[i].Hi < clean[j].Hi
		}
		return clean[i].Lo < clean[j].Lo
	})
	hp := Clamp01(highPref)

	if len(clean) == 2 {
		if src.Float64() < hp {
			return Draw(src, clean[1]), true
		}
		return Draw(src, clean[0]), true
	}

	if len(clean) > maxBiasedMembers {
		clean = clean[len(clean)-maxBiasedMembers:]
	}
	high := clean[len(clean)-1]
	rest := clean[:len(clean)-1]

	if src.Float64() < hp {
		return Draw(src, high), true
	}

	return drawByWidth(src, rest), true
}

// drawByWidth picks a member with probability proportional to its width,
// then draws uniformly inside it. members must be non-empty and clean.
func drawByWidth(src rng.Source, members Union) int {
	total := members.Width()
	pick := rng.Between(src, 1, total)
	acc := 0
	for _, iv := range members {
		acc += iv.Width()
		if pick <= acc {
			return Draw(src, iv)
		}
	}

	return Draw(src, members[len(members)-1])
}

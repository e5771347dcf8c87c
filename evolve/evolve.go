// SPDX-License-Identifier: MIT
// Package: lvspiro/evolve
//
// evolve.go — the evolution operator.
//
// Contract:
//   - lo ≤ hi (if hi < lo, hi is raised to lo; the result is then lo).
//   - The result is always inside [lo, hi].
//   - Exactly one Float64 draw is consumed in Jump mode before the step draw,
//     so the stream layout is stable for a given mode.

package evolve

import (
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/rng"
)

// Next returns the next value of a parameter bounded by [lo, hi].
//
// Complexity: O(1).
func Next(src rng.Source, prev Prev, lo, hi int, mode Mode, opts ...Option) int {
	cfg := config{jumpScale: DefaultJumpScale}
	for _, opt := range opts {
		opt(&cfg)
	}
	if hi < lo {
		hi = lo
	}

	if !prev.Set || mode == Random {
		return rng.Between(src, lo, hi)
	}

	span := hi - lo
	if mode == Jump && src.Float64() < JumpProbability {
		jump := int(float64(span) * cfg.jumpScale)
		return intmath.Clamp(prev.Value+rng.Between(src, -jump, jump), lo, hi)
	}

	drift := DriftRadius(lo, hi)

	return intmath.Clamp(prev.Value+rng.Between(src, -drift, drift), lo, hi)
}

// DriftRadius returns the drift half-width used for a [lo, hi] range.
func DriftRadius(lo, hi int) int {
	drift := int(float64(hi-lo) * DriftFraction)
	if drift < MinDrift {
		return MinDrift
	}

	return drift
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/profile
//
// profile.go — validation and the derived quantities every selector shares
// (lobe error, lobe anchor, m-targets, laps error, slack window).

package profile

import (
	"fmt"
	"math"
	"sort"
)

// Validate checks the profile invariants. It returns nil or an error wrapping
// ErrInvalidProfile that names the first violated field.
//
// Order of checks: ratio window → lobes → laps → offsets → diff/step → biases → knobs.
func (p Profile) Validate() error {
	switch {
	case !(p.RatioMin > 0) || !(p.RatioMax > 0):
		return fmt.Errorf("ratio window (%g,%g) must be positive: %w", p.RatioMin, p.RatioMax, ErrInvalidProfile)
	case p.RatioMin >= p.RatioMax:
		return fmt.Errorf("ratio_min=%g >= ratio_max=%g: %w", p.RatioMin, p.RatioMax, ErrInvalidProfile)
	case len(p.LobeRanges) == 0:
		return fmt.Errorf("lobe_ranges is empty: %w", ErrInvalidProfile)
	}
	for i, lr := range p.LobeRanges {
		if lr.Lo() < 1 || lr.Hi() < lr.Lo() {
			return fmt.Errorf("lobe_ranges[%d]=%v: %w", i, lr, ErrInvalidProfile)
		}
	}

	switch {
	case !(p.LapsTarget > 0):
		return fmt.Errorf("laps_target=%g must be > 0: %w", p.LapsTarget, ErrInvalidProfile)
	case p.LapsTolerance < 0 || math.IsNaN(p.LapsTolerance):
		return fmt.Errorf("laps_tolerance=%g must be >= 0: %w", p.LapsTolerance, ErrInvalidProfile)
	case float64(p.LapsMaxHard) < p.LapsTarget:
		return fmt.Errorf("laps_max_hard=%d < laps_target=%g: %w", p.LapsMaxHard, p.LapsTarget, ErrInvalidProfile)
	case !(p.OffsetMinFactor > 0) || !(p.OffsetMaxFactor > 0):
		return fmt.Errorf("offset factors (%g,%g) must be positive: %w", p.OffsetMinFactor, p.OffsetMaxFactor, ErrInvalidProfile)
	case p.OffsetMinFactor > p.OffsetMaxFactor:
		return fmt.Errorf("offset_min_factor=%g > offset_max_factor=%g: %w", p.OffsetMinFactor, p.OffsetMaxFactor, ErrInvalidProfile)
	case p.DiffMin < 0:
		return fmt.Errorf("diff_min=%d must be >= 0: %w", p.DiffMin, ErrInvalidProfile)
	case p.FixedRadiusStep < 0:
		return fmt.Errorf("fixed_radius_step=%d must be >= 0: %w", p.FixedRadiusStep, ErrInvalidProfile)
	case !(p.FallbackRatioSlack >= 0):
		return fmt.Errorf("fallback_ratio_slack=%g must be >= 0: %w", p.FallbackRatioSlack, ErrInvalidProfile)
	case p.RatioMin-p.FallbackRatioSlack <= 0:
		return fmt.Errorf("ratio_min - slack = %g must stay > 0: %w", p.RatioMin-p.FallbackRatioSlack, ErrInvalidProfile)
	case !unit(p.PreferredRadiusBias):
		return fmt.Errorf("preferred_radius_bias=%g not in [0,1]: %w", p.PreferredRadiusBias, ErrInvalidProfile)
	case !unit(p.RatioSampleBias):
		return fmt.Errorf("ratio_sample_bias=%g not in [0,1]: %w", p.RatioSampleBias, ErrInvalidProfile)
	case p.ConstructedMCandidates < 0 || p.ConstructedTopN < 1 || p.SampleCount < 0 || p.LobesRetryCount < 0:
		return fmt.Errorf("effort knobs (m=%d top=%d samples=%d retries=%d): %w",
			p.ConstructedMCandidates, p.ConstructedTopN, p.SampleCount, p.LobesRetryCount, ErrInvalidProfile)
	}

	return nil
}

func unit(x float64) bool {
	return x >= 0 && x <= 1
}

// LobesInRange reports whether lobes falls inside any target range.
func (p Profile) LobesInRange(lobes int) bool {
	for _, lr := range p.LobeRanges {
		if lr.Lo() <= lobes && lobes <= lr.Hi() {
			return true
		}
	}

	return false
}

// LobesError returns the distance from lobes to the nearest target range
// (0 when inside, +Inf when the profile declares no ranges).
func (p Profile) LobesError(lobes int) float64 {
	if len(p.LobeRanges) == 0 {
		return math.Inf(1)
	}

	best := math.Inf(1)
	for _, lr := range p.LobeRanges {
		var d float64
		switch {
		case lobes < lr.Lo():
			d = float64(lr.Lo() - lobes)
		case lobes > lr.Hi():
			d = float64(lobes - lr.Hi())
		default:
			return 0
		}
		if d < best {
			best = d
		}
	}

	return best
}

// LobesAnchor is the rounded mean of the lobe-range centers (at least 1).
func (p Profile) LobesAnchor() int {
	if len(p.LobeRanges) == 0 {
		return 1
	}

	sum := 0.0
	for _, lr := range p.LobeRanges {
		sum += float64(lr.Lo()+lr.Hi()) / 2
	}
	anchor := int(math.RoundToEven(sum / float64(len(p.LobeRanges))))

	return max(1, anchor)
}

// MTargets returns the sorted lobe counts the constructive phase aims at:
// every range's endpoints, its center, and center±2 when still inside.
func (p Profile) MTargets() []int {
	set := make(map[int]struct{})
	for _, lr := range p.LobeRanges {
		lo := max(1, lr.Lo())
		hi := max(lo, lr.Hi())
		set[lo] = struct{}{}
		set[hi] = struct{}{}

		center := int(math.RoundToEven(float64(lo+hi) / 2))
		center = min(hi, max(lo, center))
		set[center] = struct{}{}
		for _, delta := range []int{-2, 2} {
			if c := center + delta; c >= lo && c <= hi {
				set[c] = struct{}{}
			}
		}
	}

	out := make([]int, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Ints(out)

	return out
}

// LapsError returns |laps − LapsTarget|.
func (p Profile) LapsError(laps int) float64 {
	return math.Abs(float64(laps) - p.LapsTarget)
}

// LapsTargetInt is LapsTarget rounded to the nearest integer (at least 1).
func (p Profile) LapsTargetInt() int {
	return max(1, int(math.RoundToEven(p.LapsTarget)))
}

// SlackWindow returns the widened ratio window used by fallback phases.
func (p Profile) SlackWindow() (lo, hi float64) {
	return p.RatioMin - p.FallbackRatioSlack, p.RatioMax + p.FallbackRatioSlack
}

// RatioPenalty is the distance of ratio outside the strict window (0 inside).
func (p Profile) RatioPenalty(ratio float64) float64 {
	switch {
	case ratio < p.RatioMin:
		return p.RatioMin - ratio
	case ratio > p.RatioMax:
		return ratio - p.RatioMax
	default:
		return 0
	}
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/profile
//
// types.go — Level enum, LobeRange and the Profile record.

package profile

import (
	"fmt"
	"strings"
)

// Level names a complexity preset.
type Level int

const (
	// Simple favors few lobes and quick closure.
	Simple Level = iota
	// Medium is the default interactive preset.
	Medium
	// Complex favors many lobes and a wider offset range.
	Complex
	// Dense favors very high R/r ratios and long closure.
	Dense
)

var levelNames = [...]string{"simple", "medium", "complex", "dense"}

// Levels returns every declared level in ascending order.
func Levels() []Level {
	return []Level{Simple, Medium, Complex, Dense}
}

// String returns the canonical lower-case name.
func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	return levelNames[l]
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= Simple && l <= Dense
}

// ParseLevel maps a canonical name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}

	return Simple, fmt.Errorf("%q: %w", s, ErrUnknownLevel)
}

// MarshalText implements encoding.TextMarshaler (used for JSON map keys).
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%d: %w", int(l), ErrUnknownLevel)
	}

	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v

	return nil
}

// LobeRange is an inclusive target range for the lobe count m = R/gcd(R, r).
// It serializes as a two-element JSON array [lo, hi].
type LobeRange [2]int

// Lo returns the lower bound.
func (lr LobeRange) Lo() int { return lr[0] }

// Hi returns the upper bound.
func (lr LobeRange) Hi() int { return lr[1] }

// Profile bundles target ranges, tolerances and search-effort knobs.
//
// Fields are grouped as:
//   - geometry targets: ratio window on R/r, lobe ranges, laps-to-close bounds,
//     offset window on d/r, minimum |R−r|;
//   - fixed radius: optional snapping step and the divisor-rich preference;
//   - search effort: sample count, constructive fan-out, retries;
//   - fallback policy: ratio slack and whether diff_min survives fallback.
type Profile struct {
	RatioMin float64 `json:"ratio_min"`
	RatioMax float64 `json:"ratio_max"`

	LobeRanges []LobeRange `json:"lobe_ranges"`

	LapsTarget    float64 `json:"laps_target"`
	LapsTolerance float64 `json:"laps_tolerance"`
	LapsMaxHard   int     `json:"laps_max_hard"`

	OffsetMinFactor float64 `json:"offset_min_factor"`
	OffsetMaxFactor float64 `json:"offset_max_factor"`

	DiffMin int `json:"diff_min"`

	// FixedRadiusStep snaps R to a multiple of the step; 0 disables snapping.
	FixedRadiusStep int `json:"fixed_radius_step"`

	FallbackRatioSlack       float64 `json:"fallback_ratio_slack"`
	EnforceDiffMinInFallback bool    `json:"enforce_diff_min_in_fallback"`

	// PreferredRadiusBias is the probability of replacing R with a divisor-rich radius.
	PreferredRadiusBias float64 `json:"preferred_radius_bias"`
	// RatioSampleBias is the probability that a sampling draw targets the ratio window directly.
	RatioSampleBias float64 `json:"ratio_sample_bias"`
	// AvoidGCDOne rejects candidates with gcd(R, r) == 1 (a single huge lobe set).
	AvoidGCDOne bool `json:"avoid_gcd_eq_1"`

	ConstructedMCandidates int `json:"constructed_m_candidates"`
	ConstructedTopN        int `json:"constructed_top_n"`
	SampleCount            int `json:"sample_count"`
	LobesRetryCount        int `json:"lobes_retry_count"`
}

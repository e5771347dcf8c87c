// SPDX-License-Identifier: MIT
// Package: lvspiro/profile
//
// table.go — the default profile table and lookups.

package profile

import "fmt"

// Table maps levels to profiles. It is external configuration data: the
// selectors never mutate it.
type Table map[Level]Profile

// Defaults returns a fresh copy of the built-in table.
//
// Tuning notes:
//   - RatioSampleBias > 0 nudges sampling toward the ratio window's high end
//     (smaller r, more lobes); keep it modest to preserve variety.
//   - Dense disables R snapping so divisor-rich radii dominate.
func Defaults() Table {
	return Table{
		Simple: {
			RatioMin: 1.15, RatioMax: 2.2,
			LobeRanges: []LobeRange{{6, 14}},
			LapsTarget: 6, LapsTolerance: 4, LapsMaxHard: 24,
			OffsetMinFactor: 0.30, OffsetMaxFactor: 0.75,
			DiffMin:                  20,
			FixedRadiusStep:          10,
			FallbackRatioSlack:       0.20,
			EnforceDiffMinInFallback: true,
			PreferredRadiusBias:      0.8,
			RatioSampleBias:          0.0,
			AvoidGCDOne:              true,
			ConstructedMCandidates:   24,
			ConstructedTopN:          10,
			SampleCount:              250,
			LobesRetryCount:          6,
		},
		Medium: {
			RatioMin: 2.2, RatioMax: 4.5,
			LobeRanges: []LobeRange{{10, 26}},
			LapsTarget: 10, LapsTolerance: 6, LapsMaxHard: 48,
			OffsetMinFactor: 0.25, OffsetMaxFactor: 1.35,
			DiffMin:                  12,
			FixedRadiusStep:          5,
			FallbackRatioSlack:       0.35,
			EnforceDiffMinInFallback: true,
			PreferredRadiusBias:      0.85,
			RatioSampleBias:          0.0,
			AvoidGCDOne:              true,
			ConstructedMCandidates:   30,
			ConstructedTopN:          12,
			SampleCount:              300,
			LobesRetryCount:          4,
		},
		Complex: {
			RatioMin: 4.5, RatioMax: 7.5,
			LobeRanges: []LobeRange{{20, 60}},
			LapsTarget: 14, LapsTolerance: 8, LapsMaxHard: 72,
			OffsetMinFactor: 0.20, OffsetMaxFactor: 1.45,
			DiffMin:                  8,
			FixedRadiusStep:          2,
			FallbackRatioSlack:       0.50,
			EnforceDiffMinInFallback: true,
			PreferredRadiusBias:      0.85,
			RatioSampleBias:          0.15,
			AvoidGCDOne:              true,
			ConstructedMCandidates:   36,
			ConstructedTopN:          14,
			SampleCount:              300,
			LobesRetryCount:          4,
		},
		Dense: {
			RatioMin: 7.5, RatioMax: 16.0,
			LobeRanges: []LobeRange{{20, 100}},
			LapsTarget: 18, LapsTolerance: 12, LapsMaxHard: 96,
			OffsetMinFactor: 0.15, OffsetMaxFactor: 2.20,
			DiffMin:                  5,
			FixedRadiusStep:          0,
			FallbackRatioSlack:       1.00,
			EnforceDiffMinInFallback: true,
			PreferredRadiusBias:      0.9,
			RatioSampleBias:          0.35,
			AvoidGCDOne:              true,
			ConstructedMCandidates:   36,
			ConstructedTopN:          20,
			SampleCount:              450,
			LobesRetryCount:          7,
		},
	}
}

// Lookup returns the profile for level. Unknown or missing levels wrap ErrUnknownLevel.
func (t Table) Lookup(level Level) (Profile, error) {
	p, ok := t[level]
	if !ok {
		return Profile{}, fmt.Errorf("%s: %w", level, ErrUnknownLevel)
	}

	return p, nil
}

// MustLookup is Lookup for tables known to be complete (tests, examples).
// It panics on a missing level.
func (t Table) MustLookup(level Level) Profile {
	p, err := t.Lookup(level)
	if err != nil {
		panic(err)
	}

	return p
}

// Clone returns a deep copy (lobe ranges included).
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, p := range t {
		p.LobeRanges = append([]LobeRange(nil), p.LobeRanges...)
		out[k] = p
	}

	return out
}

// Validate validates every profile in the table.
func (t Table) Validate() error {
	for _, level := range Levels() {
		p, ok := t[level]
		if !ok {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", level, err)
		}
	}

	return nil
}

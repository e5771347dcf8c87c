// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// report.go — the result of one calibration trial.

package tuner

import (
	"cmp"
	"time"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
)

// Report is the outcome of one trial. Percentages are in [0, 100] relative
// to Samples.
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Level      profile.Level           `json:"complexity"`
	Constraint selector.ConstraintMode `json:"constraint"`
	Evolution  evolve.Mode             `json:"evolution"`
	Seed       int64                   `json:"seed"`
	Samples    int                     `json:"samples"`
	Profile    profile.Profile         `json:"profile"`

	Violations Violations `json:"violations"`
	Selection  Selection  `json:"selection_debug_summary"`
	Stats      Stats      `json:"stats"`
}

// Violations are the shares of samples breaking a profile target or showing
// a degenerate geometry.
type Violations struct {
	RatioOutside  float64 `json:"ratio_outside_profile_pct"`
	LobesOutside  float64 `json:"lobes_outside_tolerance_pct"`
	DiffBelow     float64 `json:"diff_below_profile_pct"`
	OffsetOutside float64 `json:"offset_outside_profile_pct"`
	LapsOverCap   float64 `json:"laps_over_cap_pct"`

	OffsetSmall   float64 `json:"offset_small_pct"`
	OffsetNearOne float64 `json:"offset_near_one_pct"`
	OffsetProlate float64 `json:"offset_prolate_pct"`
	OffsetLarge   float64 `json:"offset_large_pct"`

	RingLike       float64 `json:"ring_like_pct"`
	VisualRingLike float64 `json:"visual_ring_like_pct"`
	GCDOne         float64 `json:"gcd_eq_1_pct"`
}

// Selection summarizes the selector traces of a trial.
type Selection struct {
	ConstructedPct           float64 `json:"constructed_pct"`
	SampledPct               float64 `json:"sampled_pct"`
	ConstructedConsideredAvg float64 `json:"constructed_candidates_considered_avg"`
	SampledConsideredAvg     float64 `json:"sampled_candidates_considered_avg"`
	// AttemptsAvg counts attempts run; WinningAttemptAvg the attempt kept.
	AttemptsAvg              float64 `json:"attempts_avg"`
	WinningAttemptAvg        float64 `json:"winning_attempt_avg"`
	RatioRecoveredPct        float64 `json:"ratio_recovered_pct"`

	FallbackUsedPct                 float64        `json:"fallback_used_pct"`
	FallbackCandidatesTotalAvg      float64        `json:"fallback_candidates_total_avg"`
	FallbackCandidatesConsideredAvg float64        `json:"fallback_candidates_considered_avg"`
	FallbackStages                  map[string]int `json:"fallback_stage_counts"`

	FixedSources map[string]int `json:"fixed_source_counts"`

	PenFullRangeFallbackPct  float64        `json:"pen_fallback_full_range_pct"`
	PenEmptyRangeFallbackPct float64        `json:"pen_empty_range_fallback_pct"`
	PenRerolledPct           float64        `json:"pen_rerolled_pct"`
	DiffBandPct              float64        `json:"diff_band_used_pct"`
	Regions                  map[string]int `json:"pen_region_counts"`

	// LastResort lists the first samples that needed the last-resort stage.
	LastResort []Sample `json:"fallback_last_resort_samples,omitempty"`
	// CenterReach lists the first samples whose curve nearly touches the center.
	CenterReach []Sample `json:"center_reach_samples,omitempty"`
}

// Sample is one generated triple with its derived measurements.
type Sample struct {
	selector.Triple
	Lobes         int     `json:"lobes"`
	Laps          int     `json:"laps"`
	GCD           int     `json:"gcd"`
	Ratio         float64 `json:"ratio_R_over_r"`
	Diff          int     `json:"diff_abs_R_minus_r"`
	OffsetFactor  float64 `json:"offset_factor_d_over_r"`
	RhoMinOverMax float64 `json:"rho_min_over_max"`
	SharpnessP95  float64 `json:"sharpness_p95_abs_turn_rad"`

	Stage selector.FallbackStage `json:"fallback_stage,omitempty"`
}

// Stats are the distributions of the generated parameters and shape metrics.
type Stats struct {
	FixedRadius   Summary `json:"R"`
	RollingRadius Summary `json:"r"`
	PenOffset     Summary `json:"d"`
	Ratio         Summary `json:"ratio_R_over_r"`
	GCD           Summary `json:"gcd_R_r"`
	Lobes         Summary `json:"lobes_est"`
	LobeError     Summary `json:"lobes_error"`
	Laps          Summary `json:"laps_to_close"`
	Diff          Summary `json:"diff_abs_R_minus_r"`
	OffsetFactor  Summary `json:"offset_factor_d_over_r"`
	Ringness      Summary `json:"ringness_abs_d_minus_r_over_sum"`
	RadialSpan    Summary `json:"radial_span_norm"`
	RhoMinOverMax Summary `json:"rho_min_over_max"`
	SharpnessP95  Summary `json:"sharpness_p95_abs_turn_rad"`

	Correlations Correlations `json:"correlations"`
}

// Correlations are Pearson coefficients between shape metrics; nil when
// undefined (fewer than two samples or zero variance).
type Correlations struct {
	RhoVsOffset       *float64 `json:"rho_min_over_max_vs_offset_factor,omitempty"`
	SharpnessVsRho    *float64 `json:"sharpness_vs_rho_min_over_max,omitempty"`
	SharpnessVsOffset *float64 `json:"sharpness_vs_offset_factor,omitempty"`
}

// Score orders reports for AutoTune: fewer lobe misses first, then fewer
// ratio misses.
type Score struct {
	LobesOutside float64 `json:"lobes_outside_pct"`
	RatioOutside float64 `json:"ratio_outside_pct"`
}

// Compare orders scores lexicographically.
func (s Score) Compare(o Score) int {
	return cmp.Or(
		cmp.Compare(s.LobesOutside, o.LobesOutside),
		cmp.Compare(s.RatioOutside, o.RatioOutside),
	)
}

// Less reports whether s is strictly better than o.
func (s Score) Less(o Score) bool { return s.Compare(o) < 0 }

// Score returns the AutoTune objective of the report.
func (r Report) Score() Score {
	return Score{LobesOutside: r.Violations.LobesOutside, RatioOutside: r.Violations.RatioOutside}
}

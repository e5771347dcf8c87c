// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// trace.go — selection results and their diagnostics traces.
//
// Trace shapes are a stable contract for tuning tools: fields are only ever
// added, and JSON names are snake_case.

package selector

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvspiro/interval"
)

// Phase names the rolling-radius phase that produced the value.
type Phase string

const (
	PhaseConstructed Phase = "constructed"
	PhaseSampled     Phase = "sampled"
)

// FallbackStage names the fallback-cascade stage that produced the value.
type FallbackStage string

const (
	StageNone               FallbackStage = ""
	StageEvolvedConstrained FallbackStage = "evolved_constrained"
	StageRatioCandidates    FallbackStage = "ratio_candidates"
	StageEvolvedLastResort  FallbackStage = "evolved_last_resort"
)

// Bucket is a constructive priority tier. Lower values win; BucketNone marks
// a value the constructive phase did not produce.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketStrictIn
	BucketSlackIn
	BucketStrictOut
	BucketSlackOut
	bucketCount
)

var bucketNames = [...]string{"none", "strict_in", "slack_in", "strict_out", "slack_out"}

// String returns the snake_case tier name.
func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}

	return bucketNames[b]
}

// LobesInRange reports whether the tier holds on-target lobe counts.
func (b Bucket) LobesInRange() bool {
	return b == BucketStrictIn || b == BucketSlackIn
}

// MarshalText implements encoding.TextMarshaler.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bucket) UnmarshalText(text []byte) error {
	for i, name := range bucketNames {
		if strings.EqualFold(string(text), name) {
			*b = Bucket(i)
			return nil
		}
	}

	return fmt.Errorf("selector: unknown bucket %q", text)
}

// BucketCounts is the size of every constructive tier after capping.
type BucketCounts struct {
	StrictIn  int `json:"strict_in"`
	SlackIn   int `json:"slack_in"`
	StrictOut int `json:"strict_out"`
	SlackOut  int `json:"slack_out"`
}

// Window is a closed real range on R/r.
type Window struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether x ∈ [Lo, Hi].
func (w Window) Contains(x float64) bool {
	return w.Lo <= x && x <= w.Hi
}

// RollingTrace describes one RollingRadius call.
type RollingTrace struct {
	Phase       Phase `json:"phase"`
	Attempt     int   `json:"attempt"`
	Attempts    int   `json:"attempts"`
	FixedRadius int   `json:"fixed_radius"`
	PrevR       *int  `json:"prev_r,omitempty"`

	Chosen int     `json:"chosen_r"`
	GCD    int     `json:"chosen_gcd"`
	Lobes  int     `json:"chosen_lobes"`
	Laps   int     `json:"chosen_laps"`
	Ratio  float64 `json:"chosen_ratio"`
	Diff   int     `json:"chosen_diff"`

	DiffMin      int  `json:"diff_min"`
	LobesInRange bool `json:"lobes_in_range"`

	ConstructedConsidered int           `json:"constructed_candidates_considered"`
	SampledConsidered     int           `json:"sampled_candidates_considered"`
	Bucket                Bucket        `json:"constructed_choice_bucket,omitempty"`
	BucketSize            int           `json:"constructed_choice_bucket_size"`
	BucketCounts          BucketCounts  `json:"constructed_bucket_counts"`
	ChoiceKey             *ConstructKey `json:"constructed_choice_key,omitempty"`

	RatioTargeted  int  `json:"ratio_targeted_draws"`
	RatioRecovered bool `json:"ratio_recovered"`

	FallbackUsed                 bool              `json:"fallback_used"`
	FallbackStage                FallbackStage     `json:"fallback_stage,omitempty"`
	FallbackCandidatesTotal      int               `json:"fallback_candidates_total"`
	FallbackCandidatesConsidered int               `json:"fallback_candidates_considered"`
	FallbackBestKey              *RatioKey         `json:"fallback_best_key,omitempty"`
	RatioRange                   interval.Interval `json:"fallback_ratio_range"`
	RatioWindow                  Window            `json:"fallback_ratio_window"`
	RatioBounds                  Window            `json:"fallback_ratio_bounds"`
}

// Rolling is a rolling radius together with its trace.
type Rolling struct {
	R     int          `json:"r"`
	Trace RollingTrace `json:"trace"`
}

// PenTrace describes one PenOffset call. Shaping fields are zero and Region
// is RegionNone when Shaped is false (non-random evolution delegates to
// evolve.Next).
type PenTrace struct {
	Shaped bool    `json:"shaped"`
	DMin   int     `json:"d_min"`
	DMax   int     `json:"d_max"`
	A      int     `json:"a"`
	RatioT float64 `json:"ratio_t"`

	Region  Region  `json:"selection_mode,omitempty"`
	Weights Weights `json:"mode_weights"`

	T             float64 `json:"t"`
	MinRatioGuard float64 `json:"min_ratio_guard"`
	BandBase      float64 `json:"band_base"`
	BandEffective float64 `json:"band_effective"`
	RadiusMul     float64 `json:"radius_mul"`
	DMaxOverR     float64 `json:"dmax_over_r"`

	GuardR       int  `json:"guard_r"`
	GuardA       int  `json:"guard_a"`
	GuardACap    int  `json:"guard_a_cap"`
	UseRFloor    bool `json:"use_r_floor"`
	FloorR       int  `json:"floor_r"`
	EffectiveMin int  `json:"effective_min"`

	BandR    interval.Interval `json:"band_r"`
	BandA    interval.Interval `json:"band_a"`
	UseABand bool              `json:"use_a_band"`

	DiffBand    interval.Interval `json:"diff_band"`
	DiffBandEff interval.Interval `json:"diff_band_eff"`
	MidBand     interval.Interval `json:"mid_band"`
	Allowed     interval.Union    `json:"allowed_intervals"`

	HighPrefBase      float64 `json:"high_pref_base"`
	HighPrefEffective float64 `json:"high_pref_effective"`
	WidthLeft         int     `json:"interval_w_left"`
	WidthRight        int     `json:"interval_w_right"`
	WidthShare        float64 `json:"interval_width_share"`

	Final                 interval.Interval `json:"final_range"`
	EmptyRangeFallback    bool              `json:"empty_range_fallback"`
	UsedFullRangeFallback bool              `json:"used_fallback_full_range"`
	Rerolled              bool              `json:"rerolled"`

	Chosen int     `json:"chosen_d"`
	Factor float64 `json:"chosen_factor"`
}

// Pen is a pen offset together with its trace.
type Pen struct {
	D     int      `json:"d"`
	Trace PenTrace `json:"trace"`
}

// FixedSource names how FixedRadius settled on R.
type FixedSource string

const (
	// FixedPreferred took a divisor-rich radius by chance.
	FixedPreferred FixedSource = "preferred"
	// FixedForced took a divisor-rich radius because the evolved one had no
	// on-target solution.
	FixedForced FixedSource = "forced"
	// FixedSnapped kept the evolved radius, snapped to the profile step.
	FixedSnapped FixedSource = "snapped"
)

// FixedTrace describes one FixedRadius call.
type FixedTrace struct {
	Raw             int         `json:"raw"`
	Clamped         int         `json:"clamped"`
	ClampedFeasible bool        `json:"clamped_feasible"`
	Candidates      []int       `json:"candidates"`
	Source          FixedSource `json:"source"`
	Chosen          int         `json:"chosen"`
}

// Fixed is a fixed radius together with its trace.
type Fixed struct {
	R     int        `json:"r"`
	Trace FixedTrace `json:"trace"`
}

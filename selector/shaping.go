// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// shaping.go — tunable constants of the pen-offset shaping.
//
// Every threshold is a Ramp evaluated at a smoothed t ∈ [0,1], so behavior
// moves continuously across profiles instead of branching per level. The
// defaults are empirically tuned; only their monotone shape matters.

package selector

import "fmt"

// Ramp is a linear interpolation From → To over t ∈ [0,1].
type Ramp struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// At returns From + (To−From)·t.
func (r Ramp) At(t float64) float64 {
	return r.From + (r.To-r.From)*t
}

// unit reports whether the ramp stays inside [0,1] at both ends.
func (r Ramp) unit() bool {
	return unitFrac(r.From) && unitFrac(r.To)
}

// unitFrac reports x ∈ [0,1]; NaN fails.
func unitFrac(x float64) bool {
	return x >= 0 && x <= 1
}

// Shaping holds the pen-offset constants.
type Shaping struct {
	// WildOffsetMul widens d_max under the Wild constraint.
	WildOffsetMul float64 `json:"wild_offset_mul"`

	// RatioOrigin and RatioSpan map R/r to ratio_t = clamp01((R/r − origin)/span).
	RatioOrigin float64 `json:"ratio_origin"`
	RatioSpan   float64 `json:"ratio_span"`
	// DiffBand is the ± fraction of a = |R−r| forming the diff band (by ratio_t).
	DiffBand Ramp `json:"diff_band"`

	// OffsetFactorLo/Hi map OffsetMaxFactor to the profile t.
	OffsetFactorLo float64 `json:"offset_factor_lo"`
	OffsetFactorHi float64 `json:"offset_factor_hi"`

	MinRatioGuard Ramp `json:"min_ratio_guard"`
	BandBase      Ramp `json:"band_base"`

	// The r band shrinks to ShrinkMin as d_max/r goes ShrinkFrom → ShrinkTo.
	ShrinkFrom float64 `json:"shrink_from"`
	ShrinkTo   float64 `json:"shrink_to"`
	ShrinkMin  float64 `json:"shrink_min"`

	// Small rolling radii widen the r band by up to SmallRadiusMul.
	SmallRadius    float64 `json:"small_radius"`
	LargeRadius    float64 `json:"large_radius"`
	SmallRadiusMul float64 `json:"small_radius_mul"`

	AGuard    Ramp `json:"a_guard"`
	AGuardCap Ramp `json:"a_guard_cap"`
	RFloor    Ramp `json:"r_floor"`
	ABand     Ramp `json:"a_band"`
	// FarRatio: the a band and the r floor apply once a ≥ FarRatio·r.
	FarRatio float64 `json:"far_ratio"`

	MidMinSpan    int     `json:"mid_min_span"`
	MidSpanRadius float64 `json:"mid_span_radius"`
	MidSpanGap    float64 `json:"mid_span_gap"`

	// Region weights by ratio_t; Mid takes the remainder.
	MainWeight Ramp `json:"main_weight"`
	DiffWeight Ramp `json:"diff_weight"`

	HighPref        Ramp    `json:"high_pref"`
	HighPrefCap     float64 `json:"high_pref_cap"`
	TinyLeftCap     float64 `json:"tiny_left_cap"`
	NarrowLeftCap   float64 `json:"narrow_left_cap"`
	TinyLeftWidth   int     `json:"tiny_left_width"`
	NarrowLeftWidth int     `json:"narrow_left_width"`

	// Re-rolls between the two main pieces.
	RerollRight    float64 `json:"reroll_right"`
	RerollRightCap float64 `json:"reroll_right_cap"`
	RerollLeft     float64 `json:"reroll_left"`
}

// DefaultShaping returns the tuned defaults.
func DefaultShaping() Shaping {
	return Shaping{
		WildOffsetMul: 1.5,

		RatioOrigin: 2.0,
		RatioSpan:   10.0,
		DiffBand:    Ramp{0.12, 0.30},

		OffsetFactorLo: 0.75,
		OffsetFactorHi: 2.20,

		MinRatioGuard: Ramp{0.25, 0.45},
		BandBase:      Ramp{0.20, 0.30},

		ShrinkFrom: 1.35,
		ShrinkTo:   2.20,
		ShrinkMin:  0.60,

		SmallRadius:    18,
		LargeRadius:    30,
		SmallRadiusMul: 1.25,

		AGuard:    Ramp{0.08, 0.18},
		AGuardCap: Ramp{0.55, 0.68},
		RFloor:    Ramp{0.28, 0.38},
		ABand:     Ramp{0.10, 0.18},
		FarRatio:  3.0,

		MidMinSpan:    6,
		MidSpanRadius: 0.15,
		MidSpanGap:    0.45,

		MainWeight: Ramp{0.78, 0.30},
		DiffWeight: Ramp{0.05, 0.18},

		HighPref:        Ramp{0.55, 0.70},
		HighPrefCap:     0.65,
		TinyLeftCap:     0.55,
		NarrowLeftCap:   0.60,
		TinyLeftWidth:   2,
		NarrowLeftWidth: 4,

		RerollRight:    0.40,
		RerollRightCap: 1.55,
		RerollLeft:     0.30,
	}
}

// Validate checks that every divisor span is positive and every fraction lies
// in [0,1]. Comparisons are written so that NaN fails them.
//
// Errors: ErrInvalidShaping wrapped with the offending field.
func (sh Shaping) Validate() error {
	spans := []struct {
		name   string
		lo, hi float64
	}{
		{"ratio_span", 0, sh.RatioSpan},
		{"offset_factor_lo..hi", sh.OffsetFactorLo, sh.OffsetFactorHi},
		{"shrink_from..to", sh.ShrinkFrom, sh.ShrinkTo},
		{"small_radius..large_radius", sh.SmallRadius, sh.LargeRadius},
	}
	for _, sp := range spans {
		if !(sp.hi > sp.lo) {
			return fmt.Errorf("%w: %s must be a positive span", ErrInvalidShaping, sp.name)
		}
	}

	ramps := []struct {
		name string
		r    Ramp
	}{
		{"diff_band", sh.DiffBand},
		{"min_ratio_guard", sh.MinRatioGuard},
		{"band_base", sh.BandBase},
		{"a_guard", sh.AGuard},
		{"a_guard_cap", sh.AGuardCap},
		{"r_floor", sh.RFloor},
		{"a_band", sh.ABand},
		{"main_weight", sh.MainWeight},
		{"diff_weight", sh.DiffWeight},
		{"high_pref", sh.HighPref},
	}
	for _, rp := range ramps {
		if !rp.r.unit() {
			return fmt.Errorf("%w: %s must stay in [0,1]", ErrInvalidShaping, rp.name)
		}
	}

	fracs := []struct {
		name string
		v    float64
	}{
		{"shrink_min", sh.ShrinkMin},
		{"high_pref_cap", sh.HighPrefCap},
		{"tiny_left_cap", sh.TinyLeftCap},
		{"narrow_left_cap", sh.NarrowLeftCap},
		{"reroll_right", sh.RerollRight},
		{"reroll_left", sh.RerollLeft},
	}
	for _, f := range fracs {
		if !unitFrac(f.v) {
			return fmt.Errorf("%w: %s must be in [0,1]", ErrInvalidShaping, f.name)
		}
	}

	switch {
	case !(sh.WildOffsetMul >= 1):
		return fmt.Errorf("%w: wild_offset_mul must be ≥ 1", ErrInvalidShaping)
	case !(sh.SmallRadiusMul >= 1):
		return fmt.Errorf("%w: small_radius_mul must be ≥ 1", ErrInvalidShaping)
	case !(sh.FarRatio > 0), !(sh.RerollRightCap > 0):
		return fmt.Errorf("%w: far_ratio and reroll_right_cap must be positive", ErrInvalidShaping)
	case sh.MidMinSpan < 0, !(sh.MidSpanRadius >= 0), !(sh.MidSpanGap >= 0):
		return fmt.Errorf("%w: mid band spans must be non-negative", ErrInvalidShaping)
	case sh.TinyLeftWidth < 0, sh.NarrowLeftWidth < sh.TinyLeftWidth:
		return fmt.Errorf("%w: need 0 ≤ tiny_left_width ≤ narrow_left_width", ErrInvalidShaping)
	}

	return nil
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// pen.go — PenOffset: choose d for a given (R, r).
//
// Base range: d_min = max(1, ⌈r·OffsetMinFactor⌉), d_max = max(d_min,
// ⌊r·OffsetMaxFactor⌋), d_max scaled by WildOffsetMul under Wild.
//
// Non-random evolution walks d with evolve.Next over [d_min, d_max]. Random
// evolution shapes the draw (see shapePen) so that two degenerate looks stay
// rare: a pen locked in a thin radial band (ring-like curves), and a path
// that collapses through the center. The result always lies in [d_min, d_max].

package selector

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/interval"
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/rng"
)

// PenOffset returns the next pen offset d for fixed radius R and rolling radius r.
//
// Errors: ErrInvalidRadius, ErrUnknownMode, profile.ErrInvalidProfile (wrapped).
func (s *Selector) PenOffset(R, r int, prev evolve.Prev, p Params) (Pen, error) {
	if R <= 0 || r <= 0 {
		return Pen{}, fmt.Errorf("PenOffset: R=%d r=%d: %w", R, r, ErrInvalidRadius)
	}
	if err := p.validate(); err != nil {
		return Pen{}, fmt.Errorf("PenOffset: %w", err)
	}

	prof, sh := p.Profile, s.shaping
	rr := float64(r)

	dMin := max(1, intmath.CeilDiv(rr*prof.OffsetMinFactor))
	dMax := max(dMin, intmath.FloorDiv(rr*prof.OffsetMaxFactor))
	if p.Constraint == Wild {
		dMax = max(dMin, int(float64(dMax)*sh.WildOffsetMul))
	}

	a := intmath.Abs(R - r)
	ratioT := interval.Clamp01((float64(R)/rr - sh.RatioOrigin) / sh.RatioSpan)
	bandFrac := sh.DiffBand.At(ratioT)
	diffLow := max(1, intmath.Round(float64(a)*(1-bandFrac)))
	diffHigh := max(diffLow, intmath.Round(float64(a)*(1+bandFrac)))

	tr := PenTrace{
		DMin:     dMin,
		DMax:     dMax,
		A:        a,
		RatioT:   ratioT,
		DiffBand: interval.Interval{Lo: diffLow, Hi: diffHigh},
	}

	if p.Evolution != evolve.Random {
		d := evolve.Next(s.src, prev, dMin, dMax, p.Evolution)
		tr.Final = interval.Interval{Lo: dMin, Hi: dMax}
		tr.Chosen, tr.Factor = d, float64(d)/rr

		return Pen{D: d, Trace: tr}, nil
	}

	s.shapePen(r, &tr, p)

	return Pen{D: tr.Chosen, Trace: tr}, nil
}

// shapePen runs the geometry-aware draw and records every threshold in tr.
// On entry tr carries DMin, DMax, A, RatioT and DiffBand.
func (s *Selector) shapePen(r int, tr *PenTrace, p Params) {
	sh := s.shaping
	rr, fa := float64(r), float64(tr.A)
	dMin, dMax := tr.DMin, tr.DMax

	tr.Shaped = true
	t := interval.Clamp01((p.Profile.OffsetMaxFactor - sh.OffsetFactorLo) / (sh.OffsetFactorHi - sh.OffsetFactorLo))
	tr.T = t

	// Excluded band around r, narrowed for wide d ranges, widened for small r.
	tr.MinRatioGuard = sh.MinRatioGuard.At(t)
	tr.BandBase = sh.BandBase.At(t)
	band := tr.BandBase
	tr.DMaxOverR = float64(dMax) / rr
	if tr.DMaxOverR > sh.ShrinkFrom {
		u := min(1, (tr.DMaxOverR-sh.ShrinkFrom)/(sh.ShrinkTo-sh.ShrinkFrom))
		band *= Ramp{From: 1, To: sh.ShrinkMin}.At(u)
	}
	tr.RadiusMul = radiusMul(rr, sh)
	band *= tr.RadiusMul
	tr.BandEffective = band

	// Floor: profile d_min, r guard, a guard capped below the r band, r floor when far.
	tr.GuardR = intmath.CeilDiv(rr * tr.MinRatioGuard)
	tr.GuardACap = intmath.FloorDiv(rr * sh.AGuardCap.At(t))
	tr.GuardA = min(intmath.CeilDiv(fa*sh.AGuard.At(t)), tr.GuardACap)
	effMin := max(dMin, tr.GuardR, tr.GuardA)
	far := fa >= sh.FarRatio*rr
	tr.UseRFloor = far
	tr.FloorR = intmath.CeilDiv(rr * sh.RFloor.At(t))
	if far {
		effMin = max(effMin, tr.FloorR)
	}
	tr.EffectiveMin = effMin

	// Diff band clamped to [effMin, dMax]; mid band bridges d_max and its low end.
	diffEff := interval.Interval{Lo: max(effMin, tr.DiffBand.Lo), Hi: min(dMax, tr.DiffBand.Hi)}
	center := intmath.Round(float64(dMax+diffEff.Lo) / 2)
	gap := max(0, diffEff.Lo-dMax)
	minSpan := max(sh.MidMinSpan, intmath.Round(sh.MidSpanRadius*float64(max(1, r))))
	span := max(minSpan, intmath.Round(sh.MidSpanGap*float64(gap)))
	mid := interval.Interval{Lo: max(effMin, center-span), Hi: min(dMax, center+span)}
	tr.DiffBandEff, tr.MidBand = diffEff, mid

	tr.Weights = regionWeights(tr.RatioT, sh)
	regions := regionSet{
		RegionMain: {Lo: dMin, Hi: dMax},
		RegionMid:  mid,
		RegionDiff: diffEff,
	}
	tr.Region = regions.resolve(tr.Weights.pick(s.src.Float64()))

	tr.BandR = interval.Interval{Lo: intmath.FloorDiv(rr * (1 - band)), Hi: intmath.CeilDiv(rr * (1 + band))}
	aBand := sh.ABand.At(t)
	tr.BandA = interval.Interval{Lo: intmath.FloorDiv(fa * (1 - aBand)), Hi: intmath.CeilDiv(fa * (1 + aBand))}
	tr.UseABand = far && tr.A > 0

	allowed := interval.Subtract(interval.Union{{Lo: effMin, Hi: dMax}}, tr.BandR)
	if tr.UseABand {
		allowed = interval.Subtract(allowed, tr.BandA)
	}
	tr.Allowed = allowed

	if effMin > dMax {
		// Guards overshoot the profile range: the largest in-profile value is
		// the nearest safe choice.
		tr.Region = RegionMain
		tr.EmptyRangeFallback = true
		tr.Final = interval.Interval{Lo: dMax, Hi: dMax}
		tr.Chosen, tr.Factor = dMax, float64(dMax)/rr
		return
	}

	clean := allowed.Clean()
	tr.UsedFullRangeFallback = len(clean) == 0
	tr.HighPrefBase = sh.HighPref.At(t)
	tr.HighPrefEffective = tr.HighPrefBase

	var left, right interval.Interval
	split := len(clean) == 2
	if split {
		slices.SortFunc(clean, func(x, y interval.Interval) int {
			if x.Hi != y.Hi {
				return x.Hi - y.Hi
			}
			return x.Lo - y.Lo
		})
		left, right = clean[0], clean[1]
		tr.WidthLeft, tr.WidthRight = left.Width(), right.Width()
		tr.WidthShare = float64(tr.WidthRight) / float64(tr.WidthLeft+tr.WidthRight)
		tr.HighPrefEffective = effectiveHighPref(tr.HighPrefBase, tr.WidthShare, tr.WidthLeft, sh)
	}

	var d int
	switch tr.Region {
	case RegionDiff:
		tr.Final = diffEff
		d = interval.Draw(s.src, diffEff)
	case RegionMid:
		tr.Final = mid
		d = interval.Draw(s.src, mid)
	default:
		tr.Final = interval.Interval{Lo: effMin, Hi: dMax}
		v, ok := interval.DrawWithHighBias(s.src, allowed, tr.HighPrefEffective)
		if !ok {
			v = interval.Draw(s.src, tr.Final)
		}
		d = v
		if split {
			d = s.reroll(d, left, right, rr, tr)
		}
	}

	tr.Chosen, tr.Factor = d, float64(d)/rr
}

// reroll occasionally moves a main-region draw between the two pieces so a
// tiny left piece does not pin d near the r band, and a wide one keeps its
// share.
func (s *Selector) reroll(d int, left, right interval.Interval, rr float64, tr *PenTrace) int {
	sh := s.shaping
	switch {
	case left.Contains(d):
		if tr.WidthLeft <= sh.TinyLeftWidth && rng.Chance(s.src, sh.RerollRight) {
			capHi := min(right.Hi, intmath.FloorDiv(rr*sh.RerollRightCap))
			if right.Lo <= capHi {
				tr.Rerolled = true
				return rng.Between(s.src, right.Lo, capHi)
			}
		}
	case right.Contains(d):
		if tr.WidthLeft >= sh.NarrowLeftWidth && rng.Chance(s.src, sh.RerollLeft) {
			tr.Rerolled = true
			return interval.Draw(s.src, left)
		}
	}

	return d
}

// effectiveHighPref scales the high-side preference by the right piece's
// width share and caps it when the left piece is narrow.
func effectiveHighPref(base, share float64, widthLeft int, sh Shaping) float64 {
	hp := interval.Clamp01(0.5 + (base-0.5)*share)
	hp = min(hp, sh.HighPrefCap)
	switch {
	case widthLeft <= sh.TinyLeftWidth:
		hp = min(hp, sh.TinyLeftCap)
	case widthLeft <= sh.NarrowLeftWidth:
		hp = min(hp, sh.NarrowLeftCap)
	}

	return hp
}

// radiusMul widens the r band for small rolling radii, linearly between
// SmallRadius and LargeRadius.
func radiusMul(rr float64, sh Shaping) float64 {
	switch {
	case rr <= sh.SmallRadius:
		return sh.SmallRadiusMul
	case rr >= sh.LargeRadius:
		return 1
	default:
		u := (rr - sh.SmallRadius) / (sh.LargeRadius - sh.SmallRadius)
		return Ramp{From: sh.SmallRadiusMul, To: 1}.At(u)
	}
}

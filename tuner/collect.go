// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// collect.go — per-sample accumulation of metrics, violations and trace counts.

package tuner

import (
	"math"

	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
)

// Violation and sample-capture thresholds.
const (
	offsetSmallMax    = 0.35
	offsetNearOneLo   = 0.80
	offsetNearOneHi   = 1.20
	offsetProlateMin  = 1.05
	offsetLargeMin    = 1.60
	ringLikeMax       = 0.10
	visualRingLikeMax = 0.12
	centerReachMax    = 0.12

	lastResortCap  = 5
	centerReachCap = 8
)

// series are the per-sample values feeding Stats.
type series struct {
	fixed, rolling, pen, ratio, gcd, lobes, lobeErr, laps, diff []float64
	offset, ringness, span, rho, sharp                          []float64
}

// counts are the per-sample tallies feeding Violations and Selection.
type counts struct {
	ratioOut, lobesOut, diffBelow, offsetOut, lapsOver int
	offSmall, offNearOne, offProlate, offLarge         int
	ringLike, visualRingLike, gcdOne                   int
	constructed, sampled, constructedSeen, sampledSeen int
	attempts, winning, recovered                       int
	fallback, fallbackTotal, fallbackSeen              int
	penFull, penEmpty, penReroll, diffBand             int
}

type collector struct {
	prof      profile.Profile
	offsetHi  float64
	n         int
	s         series
	c         counts
	stages    map[string]int
	sources   map[string]int
	regions   map[string]int
	lastRes   []Sample
	centerRch []Sample
}

// newCollector prepares a collector; offsetMul widens the offset window
// (WildOffsetMul under Wild, 1 otherwise).
func newCollector(p profile.Profile, offsetMul float64) *collector {
	return &collector{
		prof:     p,
		offsetHi: p.OffsetMaxFactor * offsetMul,
		stages:   map[string]int{},
		sources:  map[string]int{},
		regions:  map[string]int{},
	}
}

func (c *collector) add(gen selector.Generation) {
	c.n++
	R, r, d := gen.FixedRadius, gen.RollingRadius, gen.PenOffset

	g := intmath.GCD(R, r)
	lobes := max(1, R/g)
	laps := max(1, r/g)
	ratio := float64(R) / float64(r)
	diff := intmath.Abs(R - r)
	factor := float64(d) / float64(r)
	ring := Ringness(r, d)
	shape := ShapeOf(R, r, d)

	s := &c.s
	s.fixed = append(s.fixed, float64(R))
	s.rolling = append(s.rolling, float64(r))
	s.pen = append(s.pen, float64(d))
	s.ratio = append(s.ratio, ratio)
	s.gcd = append(s.gcd, float64(g))
	s.lobes = append(s.lobes, float64(lobes))
	s.lobeErr = append(s.lobeErr, c.prof.LobesError(lobes))
	s.laps = append(s.laps, float64(laps))
	s.diff = append(s.diff, float64(diff))
	s.offset = append(s.offset, factor)
	s.ringness = append(s.ringness, ring)
	s.span = append(s.span, shape.RadialSpan)
	s.rho = append(s.rho, shape.RhoMinOverMax)
	s.sharp = append(s.sharp, shape.SharpnessP95)

	k := &c.c
	count(&k.ratioOut, ratio < c.prof.RatioMin || ratio > c.prof.RatioMax)
	count(&k.lobesOut, !c.prof.LobesInRange(lobes))
	count(&k.diffBelow, diff < c.prof.DiffMin)
	count(&k.offsetOut, factor < c.prof.OffsetMinFactor || factor > c.offsetHi)
	count(&k.lapsOver, laps > c.prof.LapsMaxHard)
	count(&k.offSmall, factor <= offsetSmallMax)
	count(&k.offNearOne, factor >= offsetNearOneLo && factor <= offsetNearOneHi)
	count(&k.offProlate, factor >= offsetProlateMin)
	count(&k.offLarge, factor >= offsetLargeMin)
	count(&k.ringLike, ring <= ringLikeMax)
	count(&k.visualRingLike, shape.RadialSpan <= visualRingLikeMax)
	count(&k.gcdOne, g == 1)

	sample := Sample{
		Triple: gen.Triple, Lobes: lobes, Laps: laps, GCD: g, Ratio: ratio, Diff: diff,
		OffsetFactor: factor, RhoMinOverMax: shape.RhoMinOverMax, SharpnessP95: shape.SharpnessP95,
		Stage: gen.Rolling.FallbackStage,
	}
	if len(c.centerRch) < centerReachCap && shape.RhoMinOverMax <= centerReachMax {
		c.centerRch = append(c.centerRch, sample)
	}

	c.addRolling(gen.Rolling, sample)
	c.addPen(gen.Pen)
	c.sources[string(gen.Fixed.Source)]++
}

func (c *collector) addRolling(tr selector.RollingTrace, sample Sample) {
	k := &c.c
	k.attempts += tr.Attempts
	k.winning += tr.Attempt
	count(&k.recovered, tr.RatioRecovered)

	switch tr.Phase {
	case selector.PhaseConstructed:
		k.constructed++
		k.constructedSeen += tr.ConstructedConsidered
	case selector.PhaseSampled:
		k.sampled++
		k.sampledSeen += tr.SampledConsidered
	}
	if !tr.FallbackUsed {
		return
	}

	k.fallback++
	k.fallbackTotal += tr.FallbackCandidatesTotal
	k.fallbackSeen += tr.FallbackCandidatesConsidered
	c.stages[string(tr.FallbackStage)]++
	if tr.FallbackStage == selector.StageEvolvedLastResort && len(c.lastRes) < lastResortCap {
		c.lastRes = append(c.lastRes, sample)
	}
}

func (c *collector) addPen(tr selector.PenTrace) {
	k := &c.c
	count(&k.penFull, tr.UsedFullRangeFallback)
	count(&k.penEmpty, tr.EmptyRangeFallback)
	count(&k.penReroll, tr.Rerolled)
	if !tr.Shaped {
		return
	}
	count(&k.diffBand, tr.Region == selector.RegionDiff)
	c.regions[tr.Region.String()]++
}

// report folds the accumulated samples into a Report body. Identity fields
// (ID, level, trial settings) are filled by the caller.
func (c *collector) report() Report {
	k, s := c.c, c.s

	return Report{
		Profile: c.prof,
		Violations: Violations{
			RatioOutside:   c.pct(k.ratioOut),
			LobesOutside:   c.pct(k.lobesOut),
			DiffBelow:      c.pct(k.diffBelow),
			OffsetOutside:  c.pct(k.offsetOut),
			LapsOverCap:    c.pct(k.lapsOver),
			OffsetSmall:    c.pct(k.offSmall),
			OffsetNearOne:  c.pct(k.offNearOne),
			OffsetProlate:  c.pct(k.offProlate),
			OffsetLarge:    c.pct(k.offLarge),
			RingLike:       c.pct(k.ringLike),
			VisualRingLike: c.pct(k.visualRingLike),
			GCDOne:         c.pct(k.gcdOne),
		},
		Selection: Selection{
			ConstructedPct:                  c.pct(k.constructed),
			SampledPct:                      c.pct(k.sampled),
			ConstructedConsideredAvg:        avg(k.constructedSeen, k.constructed),
			SampledConsideredAvg:            avg(k.sampledSeen, k.sampled),
			AttemptsAvg:                     avg(k.attempts, c.n),
			WinningAttemptAvg:               avg(k.winning, c.n),
			RatioRecoveredPct:               c.pct(k.recovered),
			FallbackUsedPct:                 c.pct(k.fallback),
			FallbackCandidatesTotalAvg:      avg(k.fallbackTotal, k.fallback),
			FallbackCandidatesConsideredAvg: avg(k.fallbackSeen, k.fallback),
			FallbackStages:                  c.stages,
			FixedSources:                    c.sources,
			PenFullRangeFallbackPct:         c.pct(k.penFull),
			PenEmptyRangeFallbackPct:        c.pct(k.penEmpty),
			PenRerolledPct:                  c.pct(k.penReroll),
			DiffBandPct:                     c.pct(k.diffBand),
			Regions:                         c.regions,
			LastResort:                      c.lastRes,
			CenterReach:                     c.centerRch,
		},
		Stats: Stats{
			FixedRadius:   Summarize(s.fixed),
			RollingRadius: Summarize(s.rolling),
			PenOffset:     Summarize(s.pen),
			Ratio:         Summarize(s.ratio),
			GCD:           Summarize(s.gcd),
			Lobes:         Summarize(s.lobes),
			LobeError:     Summarize(s.lobeErr),
			Laps:          Summarize(s.laps),
			Diff:          Summarize(s.diff),
			OffsetFactor:  Summarize(s.offset),
			Ringness:      Summarize(s.ringness),
			RadialSpan:    Summarize(s.span),
			RhoMinOverMax: Summarize(s.rho),
			SharpnessP95:  Summarize(s.sharp),
			Correlations: Correlations{
				RhoVsOffset:       correlation(s.rho, s.offset),
				SharpnessVsRho:    correlation(s.sharp, s.rho),
				SharpnessVsOffset: correlation(s.sharp, s.offset),
			},
		},
	}
}

func (c *collector) pct(n int) float64 {
	if c.n == 0 {
		return 0
	}

	return 100 * float64(n) / float64(c.n)
}

func avg(total, n int) float64 {
	if n == 0 {
		return 0
	}

	return float64(total) / float64(n)
}

func count(n *int, hit bool) {
	if hit {
		*n++
	}
}

func correlation(xs, ys []float64) *float64 {
	v, ok := Pearson(xs, ys)
	if !ok || math.IsNaN(v) {
		return nil
	}

	return &v
}

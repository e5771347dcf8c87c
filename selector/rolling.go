// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// rolling.go — RollingRadius: outer retry loop and the constructive phase.
//
// Phases of one attempt (each runs only when the previous yields nothing):
//  1. construct: m-space search over the divisors of R (this file);
//  2. sample: evolved or ratio-targeted draws scored by weight (sample.go);
//  3. fallback cascade: constrained draws → ratio candidates → last resort
//     (sample.go). The cascade always yields a value.
//
// With r = g·k and gcd(m, k) = 1 where m = R/g, the realized gcd(R, r) is
// exactly g, so lobes = m, laps = k and R/r = m/k. The constructive phase
// relies on this to turn ratio bounds into k bounds.

package selector

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/interval"
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/profile"
)

// Constructive-phase limits.
const (
	// mPerTarget is how many nearest lobe counts each m-target contributes.
	mPerTarget = 3
	// kFullSpan: k-ranges up to this span are enumerated in full.
	kFullSpan = 16
)

// RollingRadius returns the next rolling radius r for fixed radius R.
// The result always satisfies MinRolling ≤ r ≤ p.Constraint.MaxRolling(R).
//
// Errors: ErrInvalidRadius, ErrUnknownMode, profile.ErrInvalidProfile (wrapped).
func (s *Selector) RollingRadius(R int, prev evolve.Prev, p Params) (Rolling, error) {
	if R <= 0 {
		return Rolling{}, fmt.Errorf("RollingRadius: R=%d: %w", R, ErrInvalidRadius)
	}
	if err := p.validate(); err != nil {
		return Rolling{}, fmt.Errorf("RollingRadius: %w", err)
	}

	run := newRollingRun(s, R, prev, p)
	attempts := max(1, p.Profile.LobesRetryCount+1)

	var (
		best    Rolling
		bestKey RetryKey
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		res := run.once()
		res.Trace.Attempt = attempt
		res.Trace.Attempts = attempt

		key := RetryKey{LobeErr: run.prof.LobesError(res.Trace.Lobes), LapsErr: run.prof.LapsError(res.Trace.Laps)}
		if attempt == 1 || key.Less(bestKey) {
			best, bestKey = res, key
		}
		if res.Trace.LobesInRange {
			return res, nil
		}
	}
	best.Trace.Attempts = attempts

	return best, nil
}

// rollingRun holds the per-call constants shared by every attempt.
type rollingRun struct {
	s    *Selector
	R    int
	prev evolve.Prev
	p    Params
	prof profile.Profile

	lo, hi     int
	diffMin    int
	strict     Window
	slack      Window
	ratioRange interval.Interval
	divisors   []int
}

func newRollingRun(s *Selector, R int, prev evolve.Prev, p Params) *rollingRun {
	prof := p.Profile
	run := &rollingRun{
		s:        s,
		R:        R,
		prev:     prev,
		p:        p,
		prof:     prof,
		lo:       MinRolling,
		hi:       p.Constraint.MaxRolling(R),
		diffMin:  p.Constraint.DiffMin(prof),
		strict:   Window{Lo: prof.RatioMin, Hi: prof.RatioMax},
		divisors: intmath.Divisors(R),
	}
	run.slack.Lo, run.slack.Hi = prof.SlackWindow()
	run.ratioRange = interval.Interval{
		Lo: intmath.Clamp(intmath.CeilDiv(float64(R)/run.slack.Hi), run.lo, run.hi),
		Hi: intmath.Clamp(intmath.FloorDiv(float64(R)/run.slack.Lo), run.lo, run.hi),
	}

	return run
}

// once runs a single attempt of the three phases.
func (run *rollingRun) once() Rolling {
	if res, ok := run.construct(); ok {
		return res
	}

	return run.sample()
}

// baseTrace fills the fields every phase shares.
func (run *rollingRun) baseTrace() RollingTrace {
	tr := RollingTrace{
		FixedRadius: run.R,
		DiffMin:     run.diffMin,
		RatioRange:  run.ratioRange,
		RatioWindow: run.slack,
		RatioBounds: run.strict,
	}
	if run.prev.Set {
		v := run.prev.Value
		tr.PrevR = &v
	}

	return tr
}

// finish records the chosen value and its derived geometry.
func (run *rollingRun) finish(r int, tr RollingTrace) Rolling {
	m := run.measure(r)
	tr.Chosen = r
	tr.GCD = m.g
	tr.Lobes = m.lobes
	tr.Laps = m.laps
	tr.Ratio = m.ratio
	tr.Diff = m.diff
	tr.LobesInRange = run.prof.LobesInRange(m.lobes)

	return Rolling{R: r, Trace: tr}
}

// metrics are the derived quantities of a candidate r.
type metrics struct {
	g, lobes, laps, diff int
	ratio                float64
	lobeErr, lapsErr     float64
	ratioPen, diffPen    float64
}

func (run *rollingRun) measure(r int) metrics {
	g := max(1, intmath.GCD(run.R, r))
	m := metrics{
		g:     g,
		lobes: max(1, run.R/g),
		laps:  r / g,
		diff:  intmath.Abs(run.R - r),
		ratio: float64(run.R) / float64(r),
	}
	m.lobeErr = run.prof.LobesError(m.lobes)
	m.lapsErr = run.prof.LapsError(m.laps)
	m.ratioPen = run.prof.RatioPenalty(m.ratio)
	if m.diff < run.diffMin {
		m.diffPen = float64(run.diffMin - m.diff)
	}

	return m
}

// scoredR is a ranked constructive candidate.
type scoredR struct {
	key ConstructKey
	r   int
}

// construct runs the m-space search. ok=false when every tier is empty.
func (run *rollingRun) construct() (Rolling, bool) {
	var (
		buckets    [bucketCount][]scoredR
		considered int
	)

	for _, m := range run.mCandidates() {
		g := run.R / m
		if run.prof.AvoidGCDOne && g == 1 {
			continue
		}
		strictKs := kValues(kRange(m, run.strict.Lo, run.strict.Hi))
		slackKs := kValues(kRange(m, run.slack.Lo, run.slack.Hi))

		for _, k := range strictKs {
			considered += run.consider(m, g, k, &buckets)
		}
		// Slack ks only while no strict-ratio candidate exists.
		if len(buckets[BucketStrictIn])+len(buckets[BucketStrictOut]) > 0 {
			continue
		}
		for _, k := range slackKs {
			considered += run.consider(m, g, k, &buckets)
		}
	}

	for b := BucketStrictIn; b < bucketCount; b++ {
		tier := buckets[b]
		if len(tier) == 0 {
			continue
		}
		pick := tier[run.s.src.Intn(len(tier))]

		tr := run.baseTrace()
		tr.Phase = PhaseConstructed
		tr.ConstructedConsidered = considered
		tr.Bucket = b
		tr.BucketSize = len(tier)
		tr.BucketCounts = BucketCounts{
			StrictIn:  len(buckets[BucketStrictIn]),
			SlackIn:   len(buckets[BucketSlackIn]),
			StrictOut: len(buckets[BucketStrictOut]),
			SlackOut:  len(buckets[BucketSlackOut]),
		}
		key := pick.key
		tr.ChoiceKey = &key

		return run.finish(pick.r, tr), true
	}

	return Rolling{}, false
}

// consider filters one (m, g, k) triple and files it into its tier.
// It returns 1 when the candidate was scored, 0 when it was rejected.
func (run *rollingRun) consider(m, g, k int, buckets *[bucketCount][]scoredR) int {
	if k <= 0 || !intmath.Coprime(m, k) {
		return 0
	}
	r := g * k
	if r < run.lo || r > run.hi {
		return 0
	}
	ratio := float64(run.R) / float64(r)
	if !run.slack.Contains(ratio) {
		return 0
	}
	diff := intmath.Abs(run.R - r)
	if run.prof.EnforceDiffMinInFallback && diff < run.diffMin {
		return 0
	}
	if k > run.prof.LapsMaxHard {
		return 0
	}

	lobeErr := run.prof.LobesError(m)
	key := ConstructKey{
		LapsErr:      run.prof.LapsError(k),
		LobeErr:      lobeErr,
		RatioPenalty: run.prof.RatioPenalty(ratio),
		Laps:         k,
	}
	if diff < run.diffMin {
		key.DiffPenalty = float64(run.diffMin - diff)
	}

	strict, inRange := run.strict.Contains(ratio), lobeErr == 0
	var b Bucket
	switch {
	case strict && inRange:
		b = BucketStrictIn
	case inRange:
		b = BucketSlackIn
	case strict:
		b = BucketStrictOut
	default:
		b = BucketSlackOut
	}
	buckets[b] = insertRanked(buckets[b], scoredR{key: key, r: r}, run.prof.ConstructedTopN)

	return 1
}

// insertRanked inserts c after every entry with an equal or smaller key and
// truncates to limit entries.
func insertRanked(tier []scoredR, c scoredR, limit int) []scoredR {
	at := sort.Search(len(tier), func(i int) bool { return tier[i].key.Compare(c.key) > 0 })
	tier = slices.Insert(tier, at, c)
	if len(tier) > limit {
		tier = tier[:limit]
	}

	return tier
}

// mCandidates returns the sorted lobe counts to explore: the nearest divisors
// of R to each m-target, backfilled toward the lobe anchor, capped at
// ConstructedMCandidates.
func (run *rollingRun) mCandidates() []int {
	want := run.prof.ConstructedMCandidates
	set := make(map[int]struct{})
	for _, target := range run.prof.MTargets() {
		for _, m := range intmath.Closest(run.divisors, target, mPerTarget) {
			set[m] = struct{}{}
		}
	}
	if len(set) < want {
		for _, m := range intmath.Closest(run.divisors, run.prof.LobesAnchor(), want-len(set)) {
			set[m] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	slices.Sort(out)
	if len(out) > want {
		out = out[:want]
	}

	return out
}

// kValues enumerates [kMin, kMax] in full when narrow, otherwise a fixed set
// of boundary and center picks.
func kValues(kMin, kMax int) []int {
	if kMax < kMin {
		return nil
	}
	if kMax-kMin <= kFullSpan {
		out := make([]int, 0, kMax-kMin+1)
		for k := kMin; k <= kMax; k++ {
			out = append(out, k)
		}
		return out
	}

	c := (kMin + kMax) / 2
	picks := []int{
		kMin, kMin + 1, kMin + 2,
		c - 4, c - 2, c - 1, c, c + 1, c + 2, c + 4,
		kMax - 2, kMax - 1, kMax,
	}
	slices.Sort(picks)
	picks = slices.Compact(picks)

	out := picks[:0]
	for _, k := range picks {
		if k >= kMin && k <= kMax {
			out = append(out, k)
		}
	}

	return out
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// sample.go — sampling phase and the fallback cascade of RollingRadius.
//
// Sampling keeps two champions:
//   - valid: strict ratio, diff ≥ diff_min, laps ≤ hard cap, lobes on target
//     and laps within tolerance, ranked by a weighted score;
//   - fallback: inside the slack ratio window, ranked by FallbackKey.
//
// When both are missing the cascade takes over: a ratio-targeted recovery
// (only for profiles with RatioSampleBias > 0), then constrained evolved
// draws, then a small ratio-derived candidate set, then an unfiltered
// evolved value.

package selector

import (
	"slices"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/rng"
)

// Weights of the sampling score; lower scores win.
const (
	weightLobes = 5000
	weightLaps  = 2000
	weightRatio = 10000
	weightDiff  = 20000
)

// Fallback budgets.
const (
	ratioRecoveryTries  = 50
	constrainedDraws    = 80
	ratioCandidateDraws = 40
)

// sample runs the sampling phase and, if needed, the fallback cascade.
func (run *rollingRun) sample() Rolling {
	tr := run.baseTrace()
	tr.Phase = PhaseSampled
	prof := run.prof

	var (
		validR, fallbackR       int
		haveValid, haveFallback bool
		validScore              float64
		fallbackKey             FallbackKey
	)

	for range prof.SampleCount {
		r, targeted := run.draw()
		if targeted {
			tr.RatioTargeted++
		}
		tr.SampledConsidered++

		m := run.measure(r)
		if prof.AvoidGCDOne && m.g == 1 {
			continue
		}

		if run.slack.Contains(m.ratio) && run.diffAllowed(m.diff) {
			key := FallbackKey{
				LobeErr:      m.lobeErr,
				LapsErr:      m.lapsErr,
				DiffPenalty:  m.diffPen,
				RatioPenalty: m.ratioPen,
				Laps:         m.laps,
			}
			if !haveFallback || key.Less(fallbackKey) {
				fallbackR, fallbackKey, haveFallback = r, key, true
			}
		}

		if m.ratioPen == 0 &&
			m.diff >= run.diffMin &&
			m.laps <= prof.LapsMaxHard &&
			prof.LobesInRange(m.lobes) &&
			m.lapsErr <= prof.LapsTolerance {
			score := m.lobeErr*weightLobes +
				m.lapsErr*weightLaps +
				m.ratioPen*weightRatio +
				m.diffPen*weightDiff +
				float64(m.laps)
			if !haveValid || score < validScore {
				validR, validScore, haveValid = r, score, true
			}
		}
	}

	switch {
	case haveValid:
		return run.finish(validR, tr)
	case haveFallback:
		return run.finish(fallbackR, tr)
	}

	if prof.RatioSampleBias > 0 {
		if r, ok := run.ratioRecovery(); ok {
			tr.RatioRecovered = true
			return run.finish(r, tr)
		}
	}

	return run.fallback(tr)
}

// draw returns one sampling candidate and whether it was ratio-targeted.
func (run *rollingRun) draw() (int, bool) {
	if rng.Chance(run.s.src, run.prof.RatioSampleBias) {
		return run.ratioDraw(), true
	}

	return run.evolved(), false
}

// ratioDraw inverts a uniform ratio from the strict window into a radius.
func (run *rollingRun) ratioDraw() int {
	ratio := rng.Uniform(run.s.src, run.prof.RatioMin, run.prof.RatioMax)

	return intmath.Clamp(intmath.Round(float64(run.R)/ratio), run.lo, run.hi)
}

// evolved walks r from the previous value.
func (run *rollingRun) evolved() int {
	return max(MinRolling, evolve.Next(run.s.src, run.prev, run.lo, run.hi, run.p.Evolution))
}

// diffAllowed applies diff_min when the profile enforces it outside the
// strict phases.
func (run *rollingRun) diffAllowed(diff int) bool {
	return !run.prof.EnforceDiffMinInFallback || diff >= run.diffMin
}

// admissible applies the filters shared by every fallback stage.
func (run *rollingRun) admissible(m metrics) bool {
	switch {
	case run.prof.AvoidGCDOne && m.g == 1:
		return false
	case m.laps > run.prof.LapsMaxHard:
		return false
	case !run.slack.Contains(m.ratio):
		return false
	default:
		return run.diffAllowed(m.diff)
	}
}

// ratioRecovery retries ratio-targeted draws that land in the strict window.
func (run *rollingRun) ratioRecovery() (int, bool) {
	for range ratioRecoveryTries {
		r := run.ratioDraw()
		m := run.measure(r)
		if !run.strict.Contains(m.ratio) {
			continue
		}
		if run.prof.AvoidGCDOne && m.g == 1 {
			continue
		}
		if m.laps > run.prof.LapsMaxHard || !run.diffAllowed(m.diff) {
			continue
		}

		return r, true
	}

	return 0, false
}

// fallback runs the three-stage cascade. It always returns a value.
func (run *rollingRun) fallback(tr RollingTrace) Rolling {
	tr.FallbackUsed = true

	// (i) constrained evolved draws.
	for attempt := 1; attempt <= constrainedDraws; attempt++ {
		r := run.evolved()
		if !run.admissible(run.measure(r)) {
			continue
		}
		tr.FallbackStage = StageEvolvedConstrained
		tr.FallbackCandidatesTotal = attempt
		tr.FallbackCandidatesConsidered = attempt

		return run.finish(r, tr)
	}

	// (ii) ratio-derived candidate set.
	candidates := run.ratioCandidates()
	tr.FallbackCandidatesTotal = len(candidates)

	ref := run.R
	if run.prev.Set {
		ref = run.prev.Value
	}
	var (
		bestR   int
		bestKey RatioKey
		found   bool
	)
	for _, r := range candidates {
		tr.FallbackCandidatesConsidered++
		m := run.measure(r)
		if !run.admissible(m) {
			continue
		}
		key := RatioKey{LapsErr: m.lapsErr, LobeErr: m.lobeErr, Drift: intmath.Abs(r - ref)}
		if !found || key.Less(bestKey) {
			bestR, bestKey, found = r, key, true
		}
	}
	if found {
		tr.FallbackStage = StageRatioCandidates
		tr.FallbackBestKey = &bestKey

		return run.finish(bestR, tr)
	}

	// (iii) last resort: may break diff_min or the ratio window.
	tr.FallbackStage = StageEvolvedLastResort

	return run.finish(run.evolved(), tr)
}

// ratioCandidates returns the sorted fallback set: both ends of the slack
// ratio range, g·round(LapsTarget) for usable divisors g, and random picks.
func (run *rollingRun) ratioCandidates() []int {
	rr := run.ratioRange
	if rr.Empty() {
		return nil
	}

	set := map[int]struct{}{rr.Lo: {}, rr.Hi: {}}
	target := run.prof.LapsTargetInt()
	for _, g := range run.divisors {
		if run.prof.AvoidGCDOne && g == 1 {
			continue
		}
		if c := g * target; rr.Contains(c) {
			set[c] = struct{}{}
		}
	}
	if rr.Hi > rr.Lo {
		for range ratioCandidateDraws {
			set[rng.Between(run.s.src, rr.Lo, rr.Hi)] = struct{}{}
		}
	}

	out := make([]int, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	slices.Sort(out)

	return out
}

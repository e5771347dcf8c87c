// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// fixed.go — FixedRadius: evolve R, then prefer divisor-rich radii.
//
// Algorithm:
//  1. raw ← evolve.Next over [fixedMin, fixedMax]; clamped ← clamp(raw).
//  2. Score every divisor-rich radius inside the range by FixedKey and keep
//     the best preferredFanout (or the nearest ones when none can reach the
//     lobe ranges at all).
//  3. If clamped has no on-target solution, pick uniformly from those;
//     otherwise pick from them with probability PreferredRadiusBias, else
//     snap clamped to FixedRadiusStep.

package selector

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/intmath"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/rng"
)

// preferredFanout is how many ranked divisor-rich radii stay in play.
const preferredFanout = 6

// lapsProbe is the ±window around the laps target probed for each divisor.
const lapsProbe = 2

// divisorRichRadii have many divisors, which keeps the constructive phase
// of RollingRadius well supplied.
var divisorRichRadii = []int{
	120, 126, 128, 132, 140, 144, 150, 156, 160, 168,
	176, 180, 192, 196, 200, 210, 216, 224, 240, 252,
	256, 264, 270, 280, 288, 300, 308, 312, 320,
}

// DivisorRichRadii returns a copy of the preferred radius table.
func DivisorRichRadii() []int {
	return slices.Clone(divisorRichRadii)
}

// FixedRadius returns the next fixed radius R.
//
// Errors: ErrUnknownMode, profile.ErrInvalidProfile (wrapped).
func (s *Selector) FixedRadius(prev evolve.Prev, p Params) (Fixed, error) {
	if err := p.validate(); err != nil {
		return Fixed{}, fmt.Errorf("FixedRadius: %w", err)
	}

	lo, hi := s.fixedMin, s.fixedMax
	raw := evolve.Next(s.src, prev, lo, hi, p.Evolution)
	clamped := intmath.Clamp(raw, lo, hi)

	tr := FixedTrace{
		Raw:             raw,
		Clamped:         clamped,
		ClampedFeasible: fixedFeasible(clamped, p.Profile),
	}
	tr.Candidates = rankPreferred(clamped, lo, hi, p.Profile)

	switch {
	case len(tr.Candidates) == 0:
		tr.Chosen, tr.Source = snapRadius(clamped, lo, hi, p.Profile.FixedRadiusStep), FixedSnapped
	case !tr.ClampedFeasible:
		tr.Chosen, tr.Source = tr.Candidates[s.src.Intn(len(tr.Candidates))], FixedForced
	case rng.Chance(s.src, p.Profile.PreferredRadiusBias):
		tr.Chosen, tr.Source = tr.Candidates[s.src.Intn(len(tr.Candidates))], FixedPreferred
	default:
		tr.Chosen, tr.Source = snapRadius(clamped, lo, hi, p.Profile.FixedRadiusStep), FixedSnapped
	}

	return Fixed{R: tr.Chosen, Trace: tr}, nil
}

// rankPreferred returns up to preferredFanout divisor-rich radii in [lo, hi],
// best first.
func rankPreferred(clamped, lo, hi int, prof profile.Profile) []int {
	type scored struct {
		key FixedKey
		r   int
	}

	var pool []int
	for _, r := range divisorRichRadii {
		if r >= lo && r <= hi {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	ranked := make([]scored, 0, len(pool))
	for _, r := range pool {
		lobeErr, lapsErr := scoreFixedRadius(r, prof)
		ranked = append(ranked, scored{
			key: FixedKey{LobeErr: lobeErr, LapsErr: lapsErr, Distance: intmath.Abs(r - clamped)},
			r:   r,
		})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int { return a.key.Compare(b.key) })

	if math.IsInf(ranked[0].key.LobeErr, 1) {
		return intmath.Closest(pool, clamped, preferredFanout)
	}

	n := min(preferredFanout, len(ranked))
	out := make([]int, n)
	for i := range out {
		out[i] = ranked[i].r
	}

	return out
}

// fixedKs returns the probe set of laps values for one lobe count m, already
// filtered to the strict k-range, the laps cap and coprimality with m.
func fixedKs(m int, prof profile.Profile) []int {
	kMin, kMax := kRange(m, prof.RatioMin, prof.RatioMax)
	if kMax < kMin {
		return nil
	}

	target := prof.LapsTargetInt()
	probe := []int{kMin, kMax}
	for d := -lapsProbe; d <= lapsProbe; d++ {
		probe = append(probe, target+d)
	}
	slices.Sort(probe)
	probe = slices.Compact(probe)

	out := probe[:0]
	for _, k := range probe {
		if k < kMin || k > kMax || k > prof.LapsMaxHard || !intmath.Coprime(m, k) {
			continue
		}
		out = append(out, k)
	}

	return out
}

// scoreFixedRadius returns the best (lobe error, laps error) reachable from R
// with a gcd-preserving rolling radius; (+Inf, +Inf) when none exists.
func scoreFixedRadius(R int, prof profile.Profile) (lobeErr, lapsErr float64) {
	best := RetryKey{LobeErr: math.Inf(1), LapsErr: math.Inf(1)}
	for _, g := range intmath.Divisors(R) {
		if prof.AvoidGCDOne && g == 1 {
			continue
		}
		m := R / g
		for _, k := range fixedKs(m, prof) {
			key := RetryKey{LobeErr: prof.LobesError(m), LapsErr: prof.LapsError(k)}
			if key.Less(best) {
				best = key
			}
		}
	}

	return best.LobeErr, best.LapsErr
}

// fixedFeasible reports whether R admits an on-target lobe count with a
// coprime laps value inside the strict ratio window.
func fixedFeasible(R int, prof profile.Profile) bool {
	for _, g := range intmath.Divisors(R) {
		if prof.AvoidGCDOne && g == 1 {
			continue
		}
		m := R / g
		if !prof.LobesInRange(m) {
			continue
		}
		if len(fixedKs(m, prof)) > 0 {
			return true
		}
	}

	return false
}

// snapRadius rounds raw to the nearest multiple of step (half to even) and
// clamps; step 0 only clamps.
func snapRadius(raw, lo, hi, step int) int {
	if step <= 0 {
		return intmath.Clamp(raw, lo, hi)
	}
	snapped := intmath.Round(float64(raw)/float64(step)) * step

	return intmath.Clamp(snapped, lo, hi)
}

// kRange returns the laps range [⌈m/ratioMax⌉, ⌊m/ratioMin⌋], both at least 1.
func kRange(m int, ratioMin, ratioMax float64) (kMin, kMax int) {
	kMin = max(1, intmath.CeilDiv(float64(m)/ratioMax))
	kMax = max(1, intmath.FloorDiv(float64(m)/ratioMin))

	return kMin, kMax
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// shape.go — trochoid sampling and shape metrics.
//
// Curve (fixed radius R, rolling radius r, pen offset d, a = R−r inside or
// R+r outside, inside ⇔ r ≤ R):
//
//	inside:  x = a·cos t + d·cos(a/r·t),  y = a·sin t − d·sin(a/r·t)
//	outside: x = a·cos t − d·cos(a/r·t),  y = a·sin t − d·sin(a/r·t)
//
// sampled at steps+1 points over t ∈ [0, 2π·laps], laps = r/gcd(R, r),
// steps = clamp(360·laps, 360, 3000).

package tuner

import (
	"math"
	"slices"

	"github.com/katalvlaran/lvspiro/intmath"
)

const (
	stepsPerLap = 360
	maxSteps    = 3000

	// degenerateStep is the shortest segment that still has a direction.
	degenerateStep = 1e-12
)

// Shape holds the geometric metrics of one sampled curve. A metric that
// cannot be computed is NaN.
type Shape struct {
	// RadialSpan is (ρmax − ρmin)/ρmax; near 0 the curve is a thin ring.
	RadialSpan float64
	// RhoMinOverMax is ρmin/ρmax; near 0 the curve reaches the center.
	RhoMinOverMax float64
	// SharpnessP95 is the 95th percentile of the absolute turning angle
	// between successive segments, in radians. Higher means pointier lobes.
	SharpnessP95 float64
}

// ShapeOf samples the trochoid (R, r, d) and measures it. Non-positive
// parameters yield an all-NaN Shape.
//
// Complexity: O(steps log steps).
func ShapeOf(R, r, d int) Shape {
	nan := math.NaN()
	if R <= 0 || r <= 0 || d <= 0 {
		return Shape{RadialSpan: nan, RhoMinOverMax: nan, SharpnessP95: nan}
	}

	xs, ys := trochoid(R, r, d)

	rhoMin, rhoMax := math.Inf(1), 0.0
	for i := range xs {
		rho := math.Hypot(xs[i], ys[i])
		rhoMin = min(rhoMin, rho)
		rhoMax = max(rhoMax, rho)
	}

	out := Shape{RadialSpan: nan, RhoMinOverMax: nan, SharpnessP95: sharpnessP95(xs, ys)}
	if rhoMax > 0 && !math.IsInf(rhoMin, 0) {
		out.RadialSpan = (rhoMax - rhoMin) / rhoMax
		out.RhoMinOverMax = rhoMin / rhoMax
	}

	return out
}

// Ringness returns |d − r|/(d + r); near 0 the pen sits on the rolling
// circle's rim and the curve degenerates toward a ring. NaN when d + r ≤ 0.
func Ringness(r, d int) float64 {
	sum := d + r
	if sum <= 0 {
		return math.NaN()
	}

	return math.Abs(float64(d-r)) / float64(sum)
}

// trochoid returns the sampled points as parallel coordinate slices.
func trochoid(R, r, d int) (xs, ys []float64) {
	laps := max(1, r/max(1, intmath.GCD(R, r)))
	steps := min(maxSteps, max(stepsPerLap, stepsPerLap*laps))

	inside := r <= R
	a := float64(R + r)
	if inside {
		a = float64(R - r)
	}
	k := a / float64(r)
	fd := float64(d)
	tMax := 2 * math.Pi * float64(laps)

	xs = make([]float64, steps+1)
	ys = make([]float64, steps+1)
	for i := range steps + 1 {
		t := tMax * float64(i) / float64(steps)
		c2, s2 := math.Cos(k*t), math.Sin(k*t)
		if inside {
			xs[i] = a*math.Cos(t) + fd*c2
		} else {
			xs[i] = a*math.Cos(t) - fd*c2
		}
		ys[i] = a*math.Sin(t) - fd*s2
	}

	return xs, ys
}

// sharpnessP95 returns the nearest-rank 95th percentile of |turning angle|,
// skipping degenerate segments. NaN when no angle can be measured.
func sharpnessP95(xs, ys []float64) float64 {
	if len(xs) < 3 {
		return math.NaN()
	}

	turns := make([]float64, 0, len(xs)-2)
	for i := 1; i < len(xs)-1; i++ {
		v1x, v1y := xs[i]-xs[i-1], ys[i]-ys[i-1]
		v2x, v2y := xs[i+1]-xs[i], ys[i+1]-ys[i]
		if math.Hypot(v1x, v1y) <= degenerateStep || math.Hypot(v2x, v2y) <= degenerateStep {
			continue
		}
		cross := v1x*v2y - v1y*v2x
		dot := v1x*v2x + v1y*v2y
		turns = append(turns, math.Abs(math.Atan2(cross, dot)))
	}
	if len(turns) == 0 {
		return math.NaN()
	}

	slices.Sort(turns)
	idx := int(math.RoundToEven(0.95 * float64(len(turns)-1)))

	return turns[intmath.Clamp(idx, 0, len(turns)-1)]
}

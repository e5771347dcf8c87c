// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// stats.go — distribution summaries and Pearson correlation.
//
// Non-finite values (NaN, ±Inf) are excluded: they mark metrics that could
// not be measured and cannot travel through JSON.

package tuner

import (
	"math"
	"slices"
)

// Summary describes a sample distribution. All fields are zero when Count is 0.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	P05   float64 `json:"p05"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summarize computes a Summary over the finite entries of values.
//
// Complexity: O(n log n).
func Summarize(values []float64) Summary {
	v := finite(values)
	if len(v) == 0 {
		return Summary{}
	}
	slices.Sort(v)

	return Summary{
		Count: len(v),
		Mean:  mean(v),
		P05:   Percentile(v, 5),
		P50:   Percentile(v, 50),
		P95:   Percentile(v, 95),
		Min:   v[0],
		Max:   v[len(v)-1],
	}
}

// Percentile returns the p-th percentile (0..100) of an ascending slice,
// interpolating linearly between closest ranks. NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}

	k := float64(n-1) * p / 100
	f, c := math.Floor(k), math.Ceil(k)
	if f == c {
		return sorted[int(k)]
	}

	return sorted[int(f)]*(c-k) + sorted[int(c)]*(k-f)
}

// Pearson returns the correlation coefficient of the pairs (xs[i], ys[i])
// whose entries are both finite. ok is false with fewer than two pairs, on a
// length mismatch, or when either side has zero variance.
func Pearson(xs, ys []float64) (corr float64, ok bool) {
	if len(xs) != len(ys) {
		return 0, false
	}

	px := make([]float64, 0, len(xs))
	py := make([]float64, 0, len(ys))
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			px = append(px, xs[i])
			py = append(py, ys[i])
		}
	}
	if len(px) < 2 {
		return 0, false
	}

	mx, my := mean(px), mean(py)
	var cov, vx, vy float64
	for i := range px {
		dx, dy := px[i]-mx, py[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	den := math.Sqrt(vx * vy)
	if den == 0 {
		return 0, false
	}

	return cov / den, true
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, x := range values {
		if isFinite(x) {
			out = append(out, x)
		}
	}

	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s / float64(len(v))
}

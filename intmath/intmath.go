// SPDX-License-Identifier: MIT
// Package: lvspiro/intmath
//
// intmath.go — gcd, coprimality, nearest-value selection and rounding helpers.

package intmath

import (
	"math"
	"sort"
)

// GCD returns the greatest common divisor of |a| and |b|.
// GCD(0, 0) is 0, matching the usual convention.
//
// Complexity: O(log min(a, b)).
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// Coprime reports whether gcd(a, b) == 1.
func Coprime(a, b int) bool {
	return GCD(a, b) == 1
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// Clamp limits x to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(x, lo, hi int) int {
	if x > hi {
		x = hi
	}
	if x < lo {
		x = lo
	}

	return x
}

// Closest returns up to count values from values ordered by |v − target|.
// Ties keep the input order, so an ascending input yields the smaller value
// first. count < 1 is treated as 1; an empty input yields nil.
//
// Complexity: O(n log n).
func Closest(values []int, target, count int) []int {
	if len(values) == 0 {
		return nil
	}
	if count < 1 {
		count = 1
	}

	out := make([]int, len(values))
	copy(out, values)
	sort.SliceStable(out, func(i, j int) bool {
		return Abs(out[i]-target) < Abs(out[j]-target)
	})
	if len(out) > count {
		out = out[:count]
	}

	return out
}

// CeilDiv returns ⌈x⌉ as int.
func CeilDiv(x float64) int {
	return int(math.Ceil(x))
}

// FloorDiv returns ⌊x⌋ as int.
func FloorDiv(x float64) int {
	return int(math.Floor(x))
}

// Round rounds half to even, the policy of the reference tuning data.
func Round(x float64) int {
	return int(math.RoundToEven(x))
}

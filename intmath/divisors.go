// SPDX-License-Identifier: MIT
// Package: lvspiro/intmath
//
// divisors.go — divisor enumeration by trial division.

package intmath

// Divisors returns every positive divisor of n in ascending order.
// For n ≤ 0 it returns an empty (nil) slice.
//
// Algorithm: trial-divide d = 1..⌊√n⌋; each hit contributes the pair (d, n/d).
// Small halves are appended directly, large halves are collected and reversed
// so the result is sorted without an extra sort pass.
//
// Complexity: O(√n) time, O(τ(n)) space.
func Divisors(n int) []int {
	if n <= 0 {
		return nil
	}

	var (
		small []int
		large []int
		d     int
	)
	for d = 1; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		small = append(small, d)
		if other := n / d; other != d {
			large = append(large, other)
		}
	}

	// large holds co-divisors in descending order; splice them back ascending.
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}

	return small
}

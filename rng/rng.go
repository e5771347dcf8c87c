// Package rng - deterministic random sources shared by the selectors and the tuner.
//
// This file centralizes random generation for every stochastic step.
//
// Goals:
//   - Determinism: same seed ⇒ identical selections and identical traces.
//   - Encapsulation: a single factory; no time-based sources hidden anywhere.
//   - Minimal surface: selectors only need uniform ints-in-range and reals in [0,1).
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a Source across goroutines.
//   - Use Derive to create independent streams for parallel tuning runs.
package rng

import "math/rand"

// DefaultSeed is the fixed “zero” seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed int64 = 1

// Source is the random-number contract consumed by the selectors.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n); n must be > 0.
	Intn(n int) int
	// Float64 returns a uniform real in [0, 1).
	Float64() float64
}

var _ Source = (*rand.Rand)(nil)

// New returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use DefaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func New(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}

	return rand.New(rand.NewSource(s))
}

// mixSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64 finalizer constants; small input changes give well-spread outputs.
//
// Complexity: O(1).
func mixSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent deterministic stream from a parent seed and
// a stream identifier (e.g. the index of a complexity level in a tuning run).
// Derive(seed, i) depends only on its arguments, never on scheduling order.
//
// Complexity: O(1).
func Derive(seed int64, stream uint64) *rand.Rand {
	parent := seed
	if parent == 0 {
		parent = DefaultSeed
	}

	return rand.New(rand.NewSource(mixSeed(parent, stream)))
}

// Between returns a uniform integer in the closed range [lo, hi].
// If hi < lo, lo is returned.
//
// Complexity: O(1).
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}

	return lo + src.Intn(hi-lo+1)
}

// Uniform returns a uniform real in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Chance reports true with probability p (p ≤ 0 never, p ≥ 1 always).
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// options.go — Selector construction and functional options.
//
// Design:
//   - Option constructors validate their arguments and panic on nonsense
//     (nil source, inverted range); these are programmer errors.
//   - Defaults: seeded source (rng.DefaultSeed), DefaultShaping(), R ∈ [100, 320].

package selector

import (
	"github.com/katalvlaran/lvspiro/rng"
)

// Default fixed-radius range.
const (
	DefaultFixedMin = 100
	DefaultFixedMax = 320
)

// Selector draws trochoid parameters from a single random source.
// Not safe for concurrent use.
type Selector struct {
	src      rng.Source
	shaping  Shaping
	fixedMin int
	fixedMax int
}

// Option configures a Selector.
type Option func(*Selector)

// WithSeed installs a deterministic source seeded with seed (0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(s *Selector) {
		s.src = rng.New(seed)
	}
}

// WithSource installs a caller-owned source. Panics on nil.
func WithSource(src rng.Source) Option {
	if src == nil {
		panic("selector: WithSource(nil)")
	}

	return func(s *Selector) {
		s.src = src
	}
}

// WithShaping overrides the pen-offset shaping constants.
// Panics when sh fails Shaping.Validate.
func WithShaping(sh Shaping) Option {
	if err := sh.Validate(); err != nil {
		panic("selector: WithShaping: " + err.Error())
	}

	return func(s *Selector) {
		s.shaping = sh
	}
}

// WithFixedRadiusRange overrides the [lo, hi] range FixedRadius draws from.
// Panics when lo < 1 or hi < lo.
func WithFixedRadiusRange(lo, hi int) Option {
	if lo < 1 || hi < lo {
		panic("selector: WithFixedRadiusRange requires 1 ≤ lo ≤ hi")
	}

	return func(s *Selector) {
		s.fixedMin, s.fixedMax = lo, hi
	}
}

// New builds a Selector. Later options override earlier ones.
func New(opts ...Option) *Selector {
	s := &Selector{
		src:      rng.New(rng.DefaultSeed),
		shaping:  DefaultShaping(),
		fixedMin: DefaultFixedMin,
		fixedMax: DefaultFixedMax,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shaping returns the pen-offset constants in force.
func (s *Selector) Shaping() Shaping {
	return s.shaping
}

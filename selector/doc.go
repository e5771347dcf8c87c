// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// Package selector chooses integer trochoid parameters (R, r, d) that match a
// complexity profile.
//
// Three selectors share one random source and one previous-value convention:
//
//   - FixedRadius evolves R inside a fixed range, preferring divisor-rich radii
//     so that a rolling radius with a useful gcd exists.
//   - RollingRadius runs a constructive search in lobe space (m = R/g), then a
//     sampling phase, then a fallback cascade that always yields a value, all
//     wrapped in an outer retry that stops once the lobe count is on target.
//   - PenOffset draws d from [r·min, r·max], shaping the draw around r and
//     |R−r| so that ring-like and center-collapsing curves stay rare.
//
// Every call returns the chosen value together with a trace describing how it
// was found (phase, bucket, fallback stage, thresholds). Traces are pure
// observability: nothing reads them back.
//
// Determinism:
//
//	s := selector.New(selector.WithSeed(42))
//
// reproduces every value and every trace for the same sequence of calls.
//
// Concurrency: a *Selector owns its random source and is NOT safe for
// concurrent use. Give each goroutine its own Selector (see rng.Derive).
//
// Errors: selectors fail only on invalid domains (R ≤ 0, r ≤ 0, malformed
// profiles, unknown modes). Inside valid domains they always return a value;
// degraded results are visible through the trace.
package selector

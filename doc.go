// Package lvspiro picks integer parameters (R, r, d) for spirograph curves
// (hypotrochoids and epitrochoids) so that every "generate next" action lands
// on a curve with the look a user asked for: how many lobes, how fast it
// closes, how spiky it gets.
//
// 🚀 What is lvspiro?
//
//	A small, deterministic, dependency-light library that brings together:
//		• Divisors & gcd helpers: the lobe count of a curve is R/gcd(R, r)
//		• Evolution: random, drift or jump away from the previous value
//		• Interval algebra: subtract forbidden bands, draw with a high-end bias
//		• Complexity profiles: simple, medium, complex, dense
//		• Selectors: fixed radius, rolling radius, pen offset, with traces
//		• Tuning: offline trials, shape metrics, bounded auto-tune, report store
//
// ✨ Guarantees
//
//   - Total: inside a valid domain every selector returns a value
//   - Reproducible: the same seed yields the same values and the same traces
//   - Observable: every choice comes with a trace of how it was made
//
// Packages, leaves first:
//
//	intmath/  — divisors, gcd, rounding and nearest-value helpers
//	rng/      — seeded sources and derived per-stream generators
//	evolve/   — the evolution operator (Random, Drift, Jump)
//	interval/ — closed integer intervals, unions, biased draws
//	profile/  — complexity levels, profiles, JSON overrides
//	selector/ — FixedRadius, RollingRadius, PenOffset, Next
//	tuner/    — calibration trials, violation reports, AutoTune
//	store/    — memory and SQLite persistence of reports
//	cmd/spirotune/ — CLI over tuner and store
//
// Quick example:
//
//	s := selector.New(selector.WithSeed(42))
//	p := selector.Params{
//		Profile:    profile.Defaults().MustLookup(profile.Medium),
//		Constraint: selector.Physical,
//		Evolution:  evolve.Random,
//	}
//	gen, err := s.Next(nil, p) // gen.FixedRadius, gen.RollingRadius, gen.PenOffset
//
//	go get github.com/katalvlaran/lvspiro/selector
package lvspiro

// Package intmath provides the small integer toolkit used by the parameter
// selectors: divisor enumeration, gcd/coprimality and "nearest values" picks.
//
// 🚀 Why a dedicated package?
//
//	Lobe count and laps-to-close of a trochoid are pure number theory:
//	  lobes = R / gcd(R, r)
//	  laps  = r / gcd(R, r)
//	Every selector phase enumerates divisors of R and filters by coprimality,
//	so the primitives live here once, allocation-light and deterministic.
//
// ✨ Key features:
//   - Divisors(n)   — all positive divisors in ascending order, O(√n)
//   - GCD / Coprime — Euclid on non-negative magnitudes
//   - Closest       — k values nearest a target with a stable tie order
//   - CeilDiv / FloorDiv / Round — float→int helpers with a documented policy
//
// All functions are total: they never panic and never return errors.
package intmath

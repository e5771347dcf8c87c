// Package evolve implements the continuity policy between successive
// "generate next" actions: given the previous value of a parameter and its
// closed bound, it produces the next value.
//
// Modes:
//
//	Random — ignore history, uniform draw in [lo, hi].
//	Drift  — small step around the previous value:
//	           drift = max(3, ⌊0.25·(hi−lo)⌋), next = clamp(prev ± U(drift)).
//	Jump   — like Drift, but with probability 0.25 take a long step:
//	           jump = ⌊scale·(hi−lo)⌋ (scale 0.5 by default).
//
// Usage:
//
//	src := rng.New(42)
//	r := evolve.Next(src, evolve.From(57), 2, 239, evolve.Drift)
//
// Next is the sole source of session-to-session continuity; the fixed-radius,
// rolling-radius and pen-offset selectors all call it with their own bounds.
package evolve

// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// Package tuner is an offline calibration harness for the selectors.
//
// A trial simulates a session of "generate next" actions for one complexity
// level: every sample chains FixedRadius, RollingRadius and PenOffset with the
// previous triple as hint, then measures the triple against its profile and
// samples the resulting trochoid to estimate its shape. A Report gathers:
//
//   - violation rates (ratio or lobes off target, diff below minimum, ring-like
//     offsets, gcd = 1, laps over the hard cap);
//   - a summary of the selector traces (phase mix, fallback stages, pen regions);
//   - distribution statistics and Pearson correlations of the shape metrics.
//
// AutoTune searches a small neighbourhood of the effort knobs
// (ConstructedMCandidates, ConstructedTopN, SampleCount, LobesRetryCount) and
// keeps a change only when it strictly lowers (lobes outside %, ratio outside %).
//
// Determinism: each level draws from rng.Derive(seed, level), so a report
// depends only on the seed, the level, the profile and the trial settings,
// never on how many levels run or in which order. RunAll fans levels out over
// a bounded goroutine pool.
package tuner

// SPDX-License-Identifier: MIT
// Package: lvspiro/tuner
//
// errors.go — sentinel errors.
//
// Error policy:
//   - Sentinels are package-level vars; callers branch with errors.Is.
//   - Context (level, count) is added with fmt.Errorf("...: %w", ...).
//   - Selector and profile failures are wrapped unchanged.

package tuner

import "errors"

var (
	// ErrNoLevels is returned when a batch names no levels.
	ErrNoLevels = errors.New("tuner: no levels requested")

	// ErrBadSamples is returned for a non-positive sample count.
	ErrBadSamples = errors.New("tuner: samples must be positive")

	// ErrBadLimits is returned when AutoTune limits are inconsistent.
	ErrBadLimits = errors.New("tuner: invalid auto-tune limits")
)

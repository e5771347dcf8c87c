// SPDX-License-Identifier: MIT
// Package: lvspiro/profile
//
// errors.go — sentinel errors for the profile package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Context (field name, offending value) is attached with %w wrapping.

package profile

import "errors"

var (
	// ErrInvalidProfile indicates a profile that violates its invariants
	// (e.g. RatioMin ≥ RatioMax, non-positive factors, LapsMaxHard < LapsTarget).
	ErrInvalidProfile = errors.New("profile: invalid profile")

	// ErrUnknownLevel indicates a level name or value outside the closed set.
	ErrUnknownLevel = errors.New("profile: unknown level")
)

// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// errors.go — sentinel errors for the selector package.
//
// Error policy:
//   • Only invalid domains are errors; callers branch with errors.Is.
//   • Profile failures are passed through wrapped, so errors.Is(err,
//     profile.ErrInvalidProfile) keeps working.

package selector

import "errors"

var (
	// ErrInvalidRadius indicates a non-positive fixed or rolling radius.
	ErrInvalidRadius = errors.New("selector: radius must be positive")

	// ErrUnknownMode indicates a constraint or evolution mode outside its closed set.
	ErrUnknownMode = errors.New("selector: unknown mode")

	// ErrInvalidShaping indicates pen-offset shaping constants that cannot be
	// evaluated (zero spans, fractions outside [0,1]).
	ErrInvalidShaping = errors.New("selector: invalid shaping")
)

// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// types.go — constraint modes and per-call parameters.

package selector

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
)

// ConstraintMode bounds how far r may range relative to R.
type ConstraintMode int

const (
	// Physical keeps the rolling circle inside the fixed one: r ≤ R−1.
	Physical ConstraintMode = iota
	// Extended allows r up to 2R.
	Extended
	// Wild allows r up to 3R, relaxes diff_min and widens the pen range.
	Wild
)

var constraintNames = [...]string{"physical", "extended", "wild"}

// MinRolling is the smallest rolling radius any selector returns.
const MinRolling = 2

// wildDiffFactor relaxes diff_min under Wild.
const wildDiffFactor = 0.7

// String returns the canonical lower-case name.
func (c ConstraintMode) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ConstraintMode(%d)", int(c))
	}

	return constraintNames[c]
}

// Valid reports whether c is one of the declared modes.
func (c ConstraintMode) Valid() bool {
	return c >= Physical && c <= Wild
}

// ParseConstraint maps a canonical name (case-insensitive) to a ConstraintMode.
func ParseConstraint(s string) (ConstraintMode, error) {
	for i, name := range constraintNames {
		if strings.EqualFold(s, name) {
			return ConstraintMode(i), nil
		}
	}

	return Physical, fmt.Errorf("constraint %q: %w", s, ErrUnknownMode)
}

// MarshalText implements encoding.TextMarshaler.
func (c ConstraintMode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ConstraintMode) UnmarshalText(b []byte) error {
	v, err := ParseConstraint(string(b))
	if err != nil {
		return err
	}
	*c = v

	return nil
}

// MaxRolling returns the mode's upper bound on r for a fixed radius R.
// The bound never drops below MinRolling, so tiny R under Physical still
// has a non-empty range.
func (c ConstraintMode) MaxRolling(R int) int {
	var hi int
	switch c {
	case Extended:
		hi = 2 * R
	case Wild:
		hi = 3 * R
	default:
		hi = R - 1
	}

	return max(MinRolling, hi)
}

// DiffMin returns the |R−r| floor in force for this mode.
func (c ConstraintMode) DiffMin(p profile.Profile) int {
	if c == Wild {
		return max(2, int(float64(p.DiffMin)*wildDiffFactor))
	}

	return p.DiffMin
}

// Params are the per-call inputs shared by all selectors.
type Params struct {
	Profile    profile.Profile
	Constraint ConstraintMode
	Evolution  evolve.Mode
}

// validate checks modes first, then the profile.
func (p Params) validate() error {
	if !p.Constraint.Valid() {
		return fmt.Errorf("constraint %d: %w", int(p.Constraint), ErrUnknownMode)
	}
	if !p.Evolution.Valid() {
		return fmt.Errorf("evolution %d: %w", int(p.Evolution), ErrUnknownMode)
	}

	return p.Profile.Validate()
}

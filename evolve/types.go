// SPDX-License-Identifier: MIT
// Package: lvspiro/evolve
//
// types.go — Mode enum, the optional previous-value hint and options.

package evolve

import (
	"fmt"
	"strings"
)

// Mode selects how a new value relates to the previous one.
type Mode int

const (
	// Random draws a fresh value regardless of history.
	Random Mode = iota
	// Drift moves a bounded step away from the previous value.
	Drift
	// Jump occasionally takes a long step, otherwise drifts.
	Jump
)

var modeNames = [...]string{"random", "drift", "jump"}

// String returns the canonical lower-case name.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= Random && m <= Jump
}

// ParseMode maps a canonical name (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}

	return Random, fmt.Errorf("evolve: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// Prev is the optional previous value fed back by the caller.
// The zero value means "no previous value".
type Prev struct {
	Value int
	Set   bool
}

// None is the absent hint.
var None = Prev{}

// From wraps v as a present hint.
func From(v int) Prev {
	return Prev{Value: v, Set: true}
}

// Policy constants of the evolution operator.
const (
	// DefaultJumpScale is the fraction of the span used for long jumps.
	DefaultJumpScale = 0.5
	// JumpProbability is the chance that Jump mode takes a long step.
	JumpProbability = 0.25
	// DriftFraction is the fraction of the span used for drift steps.
	DriftFraction = 0.25
	// MinDrift is the floor on the drift radius for narrow ranges.
	MinDrift = 3
)

// Option customizes a single Next call.
type Option func(*config)

type config struct {
	jumpScale float64
}

// WithJumpScale overrides the long-jump fraction of the span.
// Panics on negative or NaN input (programmer error).
func WithJumpScale(scale float64) Option {
	if !(scale >= 0) {
		panic("evolve: WithJumpScale(<0)")
	}

	return func(c *config) {
		c.jumpScale = scale
	}
}

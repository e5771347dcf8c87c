// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// next.go — one "generate next" step: R, then r, then d.

package selector

import "github.com/katalvlaran/lvspiro/evolve"

// Triple is a complete parameter set for one curve.
type Triple struct {
	FixedRadius   int `json:"fixed_radius"`
	RollingRadius int `json:"rolling_radius"`
	PenOffset     int `json:"pen_offset"`
}

// Generation is a Triple with the traces of the three selectors.
type Generation struct {
	Triple
	Fixed   FixedTrace   `json:"fixed_trace"`
	Rolling RollingTrace `json:"rolling_trace"`
	Pen     PenTrace     `json:"pen_trace"`
}

// Next chains FixedRadius, RollingRadius and PenOffset, feeding each the
// matching field of prev as its hint. prev may be nil.
func (s *Selector) Next(prev *Triple, p Params) (Generation, error) {
	hR, hr, hd := evolve.None, evolve.None, evolve.None
	if prev != nil {
		hR, hr, hd = evolve.From(prev.FixedRadius), evolve.From(prev.RollingRadius), evolve.From(prev.PenOffset)
	}

	fixed, err := s.FixedRadius(hR, p)
	if err != nil {
		return Generation{}, err
	}
	rolling, err := s.RollingRadius(fixed.R, hr, p)
	if err != nil {
		return Generation{}, err
	}
	pen, err := s.PenOffset(fixed.R, rolling.R, hd, p)
	if err != nil {
		return Generation{}, err
	}

	return Generation{
		Triple:  Triple{FixedRadius: fixed.R, RollingRadius: rolling.R, PenOffset: pen.D},
		Fixed:   fixed.Trace,
		Rolling: rolling.Trace,
		Pen:     pen.Trace,
	}, nil
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/interval
//
// interval.go — Interval and Union value types plus subtraction.

package interval

import (
	"fmt"
	"strings"
)

// Interval is the closed integer range [Lo, Hi]; empty when Lo > Hi.
type Interval struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Empty reports whether the interval contains no integer.
func (iv Interval) Empty() bool {
	return iv.Lo > iv.Hi
}

// Width returns the number of integers in the interval (0 when empty).
func (iv Interval) Width() int {
	if iv.Empty() {
		return 0
	}

	return iv.Hi - iv.Lo + 1
}

// Contains reports whether x ∈ [Lo, Hi].
func (iv Interval) Contains(x int) bool {
	return iv.Lo <= x && x <= iv.Hi
}

// String renders "[lo,hi]".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d]", iv.Lo, iv.Hi)
}

// Union is an ordered list of disjoint intervals.
type Union []Interval

// Clean returns the non-empty members of u, preserving order.
func (u Union) Clean() Union {
	out := make(Union, 0, len(u))
	for _, iv := range u {
		if !iv.Empty() {
			out = append(out, iv)
		}
	}

	return out
}

// Width returns the total number of integers covered by u.
func (u Union) Width() int {
	total := 0
	for _, iv := range u {
		total += iv.Width()
	}

	return total
}

// String renders "[[a,b] [c,d]]".
func (u Union) String() string {
	parts := make([]string, len(u))
	for i, iv := range u {
		parts[i] = iv.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// Subtract removes forbidden from every member of u.
// Members are split around the forbidden range and empty pieces dropped;
// the output keeps the input order (left piece before right piece).
// An empty forbidden range returns u unchanged.
//
// Complexity: O(len(u)).
func Subtract(u Union, forbidden Interval) Union {
	if forbidden.Empty() {
		return u
	}

	out := make(Union, 0, len(u)+1)
	for _, iv := range u {
		if iv.Hi < forbidden.Lo || iv.Lo > forbidden.Hi {
			out = append(out, iv)
			continue
		}

		left := Interval{Lo: iv.Lo, Hi: min(iv.Hi, forbidden.Lo-1)}
		right := Interval{Lo: max(iv.Lo, forbidden.Hi+1), Hi: iv.Hi}
		if !left.Empty() {
			out = append(out, left)
		}
		if !right.Empty() {
			out = append(out, right)
		}
	}

	return out
}

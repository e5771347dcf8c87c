// SPDX-License-Identifier: MIT
// Package: lvspiro/selector
//
// keys.go — lexicographic ranking keys.
//
// Each key compares field by field in declaration order; smaller is better.
// The field order is the contract: changing it changes which candidate wins
// a tie.

package selector

import "cmp"

// ConstructKey ranks constructive candidates: laps error, then lobe error,
// diff penalty, ratio penalty and finally the raw laps count.
type ConstructKey struct {
	LapsErr      float64 `json:"laps_err"`
	LobeErr      float64 `json:"lobe_err"`
	DiffPenalty  float64 `json:"diff_penalty"`
	RatioPenalty float64 `json:"ratio_penalty"`
	Laps         int     `json:"laps"`
}

// Compare returns -1, 0 or +1.
func (k ConstructKey) Compare(o ConstructKey) int {
	return cmp.Or(
		cmp.Compare(k.LapsErr, o.LapsErr),
		cmp.Compare(k.LobeErr, o.LobeErr),
		cmp.Compare(k.DiffPenalty, o.DiffPenalty),
		cmp.Compare(k.RatioPenalty, o.RatioPenalty),
		cmp.Compare(k.Laps, o.Laps),
	)
}

// Less reports k < o.
func (k ConstructKey) Less(o ConstructKey) bool { return k.Compare(o) < 0 }

// FallbackKey ranks slack-window sampling candidates. Lobe error leads here,
// unlike ConstructKey.
type FallbackKey struct {
	LobeErr      float64 `json:"lobe_err"`
	LapsErr      float64 `json:"laps_err"`
	DiffPenalty  float64 `json:"diff_penalty"`
	RatioPenalty float64 `json:"ratio_penalty"`
	Laps         int     `json:"laps"`
}

// Compare returns -1, 0 or +1.
func (k FallbackKey) Compare(o FallbackKey) int {
	return cmp.Or(
		cmp.Compare(k.LobeErr, o.LobeErr),
		cmp.Compare(k.LapsErr, o.LapsErr),
		cmp.Compare(k.DiffPenalty, o.DiffPenalty),
		cmp.Compare(k.RatioPenalty, o.RatioPenalty),
		cmp.Compare(k.Laps, o.Laps),
	)
}

// Less reports k < o.
func (k FallbackKey) Less(o FallbackKey) bool { return k.Compare(o) < 0 }

// RatioKey ranks the ratio-derived fallback set; Drift is the distance to
// the previous r (or to R when there is none).
type RatioKey struct {
	LapsErr float64 `json:"laps_err"`
	LobeErr float64 `json:"lobe_err"`
	Drift   int     `json:"drift"`
}

// Compare returns -1, 0 or +1.
func (k RatioKey) Compare(o RatioKey) int {
	return cmp.Or(
		cmp.Compare(k.LapsErr, o.LapsErr),
		cmp.Compare(k.LobeErr, o.LobeErr),
		cmp.Compare(k.Drift, o.Drift),
	)
}

// Less reports k < o.
func (k RatioKey) Less(o RatioKey) bool { return k.Compare(o) < 0 }

// RetryKey ranks whole selection attempts.
type RetryKey struct {
	LobeErr float64 `json:"lobe_err"`
	LapsErr float64 `json:"laps_err"`
}

// Compare returns -1, 0 or +1.
func (k RetryKey) Compare(o RetryKey) int {
	return cmp.Or(
		cmp.Compare(k.LobeErr, o.LobeErr),
		cmp.Compare(k.LapsErr, o.LapsErr),
	)
}

// Less reports k < o.
func (k RetryKey) Less(o RetryKey) bool { return k.Compare(o) < 0 }

// FixedKey ranks divisor-rich fixed radii: best reachable lobe error, best
// reachable laps error, then distance from the evolved value.
type FixedKey struct {
	LobeErr  float64 `json:"lobe_err"`
	LapsErr  float64 `json:"laps_err"`
	Distance int     `json:"distance"`
}

// Compare returns -1, 0 or +1.
func (k FixedKey) Compare(o FixedKey) int {
	return cmp.Or(
		cmp.Compare(k.LobeErr, o.LobeErr),
		cmp.Compare(k.LapsErr, o.LapsErr),
		cmp.Compare(k.Distance, o.Distance),
	)
}

// Less reports k < o.
func (k FixedKey) Less(o FixedKey) bool { return k.Compare(o) < 0 }

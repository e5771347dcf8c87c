// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// store.go — the Store contract and the listing entry.

package store

import (
	"cmp"
	"context"
	"time"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
	"github.com/katalvlaran/lvspiro/tuner"
)

// Store persists tuning reports keyed by Report.ID.
type Store interface {
	// Init prepares the backend. It is idempotent.
	Init(ctx context.Context) error
	// SaveReport inserts or replaces a report.
	SaveReport(ctx context.Context, rep tuner.Report) error
	// GetReport loads a report; ok is false when id is unknown.
	GetReport(ctx context.Context, id string) (rep tuner.Report, ok bool, err error)
	// ListReports returns one Entry per stored report, oldest first.
	ListReports(ctx context.Context) ([]Entry, error)
}

// Entry is the listing view of a stored report.
type Entry struct {
	ID         string                  `json:"id"`
	CreatedAt  time.Time               `json:"created_at"`
	Level      profile.Level           `json:"complexity"`
	Constraint selector.ConstraintMode `json:"constraint"`
	Evolution  evolve.Mode             `json:"evolution"`
	Samples    int                     `json:"samples"`
	Score      tuner.Score             `json:"score"`
}

// EntryOf extracts the listing view of rep.
func EntryOf(rep tuner.Report) Entry {
	return Entry{
		ID:         rep.ID,
		CreatedAt:  rep.CreatedAt.UTC(),
		Level:      rep.Level,
		Constraint: rep.Constraint,
		Evolution:  rep.Evolution,
		Samples:    rep.Samples,
		Score:      rep.Score(),
	}
}

// compareEntries orders entries by creation time, then ID.
func compareEntries(a, b Entry) int {
	return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
}

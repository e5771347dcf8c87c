// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// errors.go — sentinel errors.

package store

import "errors"

var (
	// ErrNotInitialized is returned by any method called before Init.
	ErrNotInitialized = errors.New("store: not initialized")

	// ErrVersionMismatch is returned when a stored record carries an unknown
	// schema or codec version.
	ErrVersionMismatch = errors.New("store: record version mismatch")

	// ErrUnsupportedBackend is returned by NewStore for an unknown kind.
	ErrUnsupportedBackend = errors.New("store: unsupported backend")

	// ErrMissingID is returned when saving a report without an ID.
	ErrMissingID = errors.New("store: report has no id")

	// ErrMissingPath is returned when a SQLite store has no database path.
	ErrMissingPath = errors.New("store: sqlite path is required")
)

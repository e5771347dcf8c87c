// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// Package store persists tuning reports.
//
// Two backends implement Store:
//
//   - MemoryStore keeps encoded reports in a map; useful for tests and one-shot
//     CLI runs.
//   - SQLiteStore keeps them in a single SQLite table (pure-Go driver
//     modernc.org/sqlite), one row per report with a JSON payload and the
//     columns needed for listing.
//
// Both backends store the same versioned JSON envelope (see EncodeReport), so a
// report read back is identical whatever the backend. A record written with a
// different schema or codec version is rejected with ErrVersionMismatch.
//
// Usage:
//
//	st, err := store.NewStore("sqlite", "reports.db")
//	if err != nil { ... }
//	defer store.CloseIfSupported(st)
//	if err := st.Init(ctx); err != nil { ... }
//	err = st.SaveReport(ctx, rep)
//
// Every method is safe for concurrent use. Init must be called first; other
// methods return ErrNotInitialized until it has succeeded.
package store

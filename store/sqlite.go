// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// sqlite.go — SQLite backend over database/sql and modernc.org/sqlite.
//
// Schema: one table, one row per report. The listing columns duplicate fields
// of the payload so ListReports never decodes JSON; created_at is Unix
// nanoseconds (UTC) to keep ordering numeric.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
	"github.com/katalvlaran/lvspiro/tuner"
)

// SQLiteStore persists reports in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns an unopened store for path. Use ":memory:" for a
// private in-memory database.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init implements Store: it opens the database and creates the schema.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return ErrMissingPath
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping %s: %w", s.path, err)
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	s.db = db

	return nil
}

// SaveReport implements Store.
func (s *SQLiteStore) SaveReport(ctx context.Context, rep tuner.Report) error {
	if rep.ID == "" {
		return ErrMissingID
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeReport(rep)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", rep.ID, err)
	}
	e := EntryOf(rep)

	_, err = db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, level, constraint_mode, evolution, samples,
			lobes_outside_pct, ratio_outside_pct, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			level = excluded.level,
			constraint_mode = excluded.constraint_mode,
			evolution = excluded.evolution,
			samples = excluded.samples,
			lobes_outside_pct = excluded.lobes_outside_pct,
			ratio_outside_pct = excluded.ratio_outside_pct,
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, e.ID, e.CreatedAt.UnixNano(), e.Level.String(), e.Constraint.String(), e.Evolution.String(), e.Samples,
		e.Score.LobesOutside, e.Score.RatioOutside, CurrentSchemaVersion, CurrentCodecVersion, payload)
	if err != nil {
		return fmt.Errorf("save report %s: %w", rep.ID, err)
	}

	return nil
}

// GetReport implements Store.
func (s *SQLiteStore) GetReport(ctx context.Context, id string) (tuner.Report, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return tuner.Report{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tuner.Report{}, false, nil
		}
		return tuner.Report{}, false, fmt.Errorf("get report %s: %w", id, err)
	}

	rep, err := DecodeReport(payload)
	if err != nil {
		return tuner.Report{}, false, fmt.Errorf("decode report %s: %w", id, err)
	}

	return rep, true, nil
}

// ListReports implements Store.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]Entry, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, created_at, level, constraint_mode, evolution, samples, lobes_outside_pct, ratio_outside_pct
		FROM reports
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return out, nil
}

// Close releases the database. The store may be re-opened with Init.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}

	return s.db, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                          Entry
		created                    int64
		level, constraint, evoName string
	)
	if err := rows.Scan(&e.ID, &created, &level, &constraint, &evoName, &e.Samples,
		&e.Score.LobesOutside, &e.Score.RatioOutside); err != nil {
		return Entry{}, fmt.Errorf("scan report row: %w", err)
	}
	e.CreatedAt = time.Unix(0, created).UTC()

	var err error
	if e.Level, err = profile.ParseLevel(level); err != nil {
		return Entry{}, fmt.Errorf("report %s: %w", e.ID, err)
	}
	if e.Constraint, err = selector.ParseConstraint(constraint); err != nil {
		return Entry{}, fmt.Errorf("report %s: %w", e.ID, err)
	}
	if e.Evolution, err = evolve.ParseMode(evoName); err != nil {
		return Entry{}, fmt.Errorf("report %s: %w", e.ID, err)
	}

	return e, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			level TEXT NOT NULL,
			constraint_mode TEXT NOT NULL,
			evolution TEXT NOT NULL,
			samples INTEGER NOT NULL,
			lobes_outside_pct REAL NOT NULL,
			ratio_outside_pct REAL NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS reports_created_at ON reports (created_at, id);
	`)

	return err
}

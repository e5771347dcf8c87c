// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// factory.go — backend selection by name.

package store

import "fmt"

// Backend names accepted by NewStore.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// NewStore returns an uninitialized backend: "memory" (or "") or "sqlite"
// backed by sqlitePath.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		if sqlitePath == "" {
			return nil, ErrMissingPath
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnsupportedBackend)
	}
}

// CloseIfSupported closes backends that hold resources.
func CloseIfSupported(st Store) error {
	closer, ok := st.(interface{ Close() error })
	if !ok {
		return nil
	}

	return closer.Close()
}

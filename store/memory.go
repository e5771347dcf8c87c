// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// memory.go — in-process backend.

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/katalvlaran/lvspiro/tuner"
)

// MemoryStore keeps encoded reports in memory. Reports are stored through the
// same envelope as SQLiteStore, so callers never share maps or slices with
// the store.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	payloads    map[string][]byte
	entries     map[string]Entry
}

// NewMemoryStore returns an uninitialized MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init implements Store. Calling it again keeps the stored reports.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.payloads = make(map[string][]byte)
	s.entries = make(map[string]Entry)

	return nil
}

// SaveReport implements Store.
func (s *MemoryStore) SaveReport(_ context.Context, rep tuner.Report) error {
	if rep.ID == "" {
		return ErrMissingID
	}
	payload, err := EncodeReport(rep)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", rep.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	s.payloads[rep.ID] = payload
	s.entries[rep.ID] = EntryOf(rep)

	return nil
}

// GetReport implements Store.
func (s *MemoryStore) GetReport(_ context.Context, id string) (tuner.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return tuner.Report{}, false, ErrNotInitialized
	}
	payload, ok := s.payloads[id]
	if !ok {
		return tuner.Report{}, false, nil
	}
	rep, err := DecodeReport(payload)
	if err != nil {
		return tuner.Report{}, false, fmt.Errorf("decode report %s: %w", id, err)
	}

	return rep, true, nil
}

// ListReports implements Store.
func (s *MemoryStore) ListReports(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, compareEntries)

	return out, nil
}

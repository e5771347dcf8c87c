// SPDX-License-Identifier: MIT
// Package: lvspiro/profile
//
// load.go — JSON overrides on top of the default table.
//
// Document shape: an object keyed by level name; each value is a partial
// profile whose present fields replace the defaults:
//
//	{"dense": {"sample_count": 600}, "simple": {"lobe_ranges": [[5, 12]]}}

package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadTable reads path and applies its overrides to Defaults().
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTable(data)
}

// ParseTable applies a JSON override document to Defaults() and validates
// the result.
func ParseTable(data []byte) (Table, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile overrides: %w", err)
	}

	tbl := Defaults()
	for name, msg := range raw {
		level, err := ParseLevel(name)
		if err != nil {
			return nil, err
		}
		p := tbl[level]
		if err := json.Unmarshal(msg, &p); err != nil {
			return nil, fmt.Errorf("profile %s: %w", level, err)
		}
		tbl[level] = p
	}

	if err := tbl.Validate(); err != nil {
		return nil, err
	}

	return tbl, nil
}

// MarshalTable renders the table as indented JSON keyed by level name.
func MarshalTable(t Table) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// SPDX-License-Identifier: MIT
// Package: lvspiro/store
//
// codec.go — the versioned JSON envelope shared by every backend.

package store

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/lvspiro/tuner"
)

// Envelope versions written by this package.
const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// record is the stored envelope.
type record struct {
	SchemaVersion int          `json:"schema_version"`
	CodecVersion  int          `json:"codec_version"`
	Report        tuner.Report `json:"report"`
}

// EncodeReport wraps rep in the current envelope.
func EncodeReport(rep tuner.Report) ([]byte, error) {
	return json.Marshal(record{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
		Report:        rep,
	})
}

// DecodeReport unwraps an envelope written by EncodeReport.
func DecodeReport(data []byte) (tuner.Report, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return tuner.Report{}, err
	}
	if rec.SchemaVersion != CurrentSchemaVersion || rec.CodecVersion != CurrentCodecVersion {
		return tuner.Report{}, fmt.Errorf("schema=%d codec=%d: %w", rec.SchemaVersion, rec.CodecVersion, ErrVersionMismatch)
	}

	return rec.Report, nil
}

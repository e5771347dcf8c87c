package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/store"
)

// TestDecodeReport_Versions checks envelope validation.
func TestDecodeReport_Versions(t *testing.T) {
	rep := report(t, profile.Simple, t0)
	data, err := store.EncodeReport(rep)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schema_version":1`)
	assert.Contains(t, string(data), `"complexity":"simple"`)

	got, err := store.DecodeReport(data)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)

	_, err = store.DecodeReport([]byte(`{"schema_version":2,"codec_version":1,"report":{}}`))
	assert.ErrorIs(t, err, store.ErrVersionMismatch)
	_, err = store.DecodeReport([]byte(`{"schema_version":1,"codec_version":0}`))
	assert.ErrorIs(t, err, store.ErrVersionMismatch)
	_, err = store.DecodeReport([]byte(`{not json`))
	assert.Error(t, err)
}

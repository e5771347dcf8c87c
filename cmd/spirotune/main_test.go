package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/store"
	"github.com/katalvlaran/lvspiro/tuner"
)

// exec runs the command line and returns stdout and stderr.
func exec(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, &out, &errOut)

	return out.String(), errOut.String(), err
}

func TestRun_UsageErrors(t *testing.T) {
	_, _, err := exec(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing command")

	_, _, err = exec(t, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: nope")

	_, _, err = exec(t, "run", "-constraint", "bogus")
	require.Error(t, err)

	_, _, err = exec(t, "run", "-only", "extreme")
	assert.ErrorIs(t, err, profile.ErrUnknownLevel)

	_, _, err = exec(t, "show", "-store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-id is required")
}

func TestProfiles_RoundTrip(t *testing.T) {
	out, _, err := exec(t, "profiles")
	require.NoError(t, err)

	tbl, err := profile.ParseTable([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, profile.Defaults(), tbl)

	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"medium": {"diff_min": 14}}`), 0o644))
	out, _, err = exec(t, "profiles", "-profiles", path)
	require.NoError(t, err)
	tbl, err = profile.ParseTable([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 14, tbl[profile.Medium].DiffMin)
}

func TestRun_SaveListShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "reports.db")

	out, logs, err := exec(t, "run", "-samples", "10", "-only", "medium", "-seed", "7",
		"-store", "sqlite", "-db-path", db, "-save")
	require.NoError(t, err)
	assert.Contains(t, out, "complexity=medium constraint=extended evolution=random samples=10")
	assert.Contains(t, out, "corr_rho_min_over_max_vs_offset_factor_ranked")
	assert.Contains(t, logs, `msg="saved report"`)

	id := regexp.MustCompile(`id=([0-9a-f-]{36})`).FindStringSubmatch(out)
	require.Len(t, id, 2)

	out, _, err = exec(t, "reports", "-store", "sqlite", "-db-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, id[1])
	assert.Contains(t, out, "medium")

	out, _, err = exec(t, "reports", "-store", "sqlite", "-db-path", db, "-json")
	require.NoError(t, err)
	var entries []store.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, id[1], entries[0].ID)

	out, _, err = exec(t, "show", "-store", "sqlite", "-db-path", db, "-id", id[1])
	require.NoError(t, err)
	var rep tuner.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, id[1], rep.ID)
	assert.Equal(t, 10, rep.Samples)

	_, _, err = exec(t, "show", "-store", "sqlite", "-db-path", db, "missing-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRun_JSON(t *testing.T) {
	out, _, err := exec(t, "run", "-samples", "8", "-only", "simple", "-evolution", "drift", "-json")
	require.NoError(t, err)

	var reps []tuner.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 1)
	assert.Equal(t, profile.Simple, reps[0].Level)
}

func TestReports_EmptyMemory(t *testing.T) {
	out, _, err := exec(t, "reports", "-store", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "no reports found")
}

func TestAutoTune_WritesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuned.json")

	out, logs, err := exec(t, "autotune", "-only", "simple", "-samples", "6",
		"-auto-samples", "6", "-iterations", "1", "-out", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "tuned profiles:")
	assert.Contains(t, out, `"simple"`)
	assert.Contains(t, logs, `msg=tuned`)
	assert.Contains(t, logs, "level=DEBUG")

	tbl, err := profile.LoadTable(path)
	require.NoError(t, err)
	base := profile.Defaults()[profile.Simple]
	assert.GreaterOrEqual(t, tbl[profile.Simple].ConstructedMCandidates, base.ConstructedMCandidates)
	assert.Equal(t, profile.Defaults()[profile.Dense], tbl[profile.Dense])
}

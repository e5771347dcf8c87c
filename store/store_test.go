package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvspiro/evolve"
	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/selector"
	"github.com/katalvlaran/lvspiro/store"
	"github.com/katalvlaran/lvspiro/tuner"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// report runs a short real trial stamped at the given time.
func report(t testing.TB, level profile.Level, at time.Time) tuner.Report {
	t.Helper()
	tn := tuner.New(tuner.WithSeed(3), tuner.WithClock(func() time.Time { return at }))
	rep, err := tn.Run(context.Background(), level, 12, selector.Extended, evolve.Random)
	require.NoError(t, err)

	return rep
}

// backends returns an initialized store of every kind.
func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	ctx := context.Background()

	out := map[string]store.Store{
		store.KindMemory: store.NewMemoryStore(),
		store.KindSQLite: store.NewSQLiteStore(filepath.Join(t.TempDir(), "reports.db")),
	}
	for name, st := range out {
		require.NoError(t, st.Init(ctx), name)
		require.NoError(t, st.Init(ctx), "%s: Init is idempotent", name)
		t.Cleanup(func() { _ = store.CloseIfSupported(st) })
	}

	return out
}

// TestStore_RoundTrip checks that a report reads back unchanged.
func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rep := report(t, profile.Medium, t0)

	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveReport(ctx, rep))

			got, ok, err := st.GetReport(ctx, rep.ID)
			require.NoError(t, err)
			require.True(t, ok)
			require.True(t, rep.CreatedAt.Equal(got.CreatedAt))
			got.CreatedAt = rep.CreatedAt
			assert.Equal(t, rep, got)

			_, ok, err = st.GetReport(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

// TestStore_List checks ordering, listing fields and replacement by ID.
func TestStore_List(t *testing.T) {
	ctx := context.Background()
	late := report(t, profile.Simple, t0.Add(time.Hour))
	early := report(t, profile.Dense, t0)

	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.SaveReport(ctx, late))
			require.NoError(t, st.SaveReport(ctx, early))

			list, err := st.ListReports(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, early.ID, list[0].ID)
			assert.Equal(t, late.ID, list[1].ID)

			e := list[0]
			assert.Equal(t, profile.Dense, e.Level)
			assert.Equal(t, selector.Extended, e.Constraint)
			assert.Equal(t, evolve.Random, e.Evolution)
			assert.Equal(t, 12, e.Samples)
			assert.Equal(t, early.Score(), e.Score)
			assert.True(t, t0.Equal(e.CreatedAt))

			moved := early
			moved.CreatedAt = t0.Add(2 * time.Hour)
			require.NoError(t, st.SaveReport(ctx, moved))

			list, err = st.ListReports(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2, "same ID replaces")
			assert.Equal(t, late.ID, list[0].ID)
			assert.Equal(t, early.ID, list[1].ID)
		})
	}
}

// TestStore_Errors covers use before Init and reports without an ID.
func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	rep := report(t, profile.Medium, t0)

	for name, st := range map[string]store.Store{
		store.KindMemory: store.NewMemoryStore(),
		store.KindSQLite: store.NewSQLiteStore(filepath.Join(t.TempDir(), "x.db")),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, st.SaveReport(ctx, rep), store.ErrNotInitialized)
			_, _, err := st.GetReport(ctx, rep.ID)
			assert.ErrorIs(t, err, store.ErrNotInitialized)
			_, err = st.ListReports(ctx)
			assert.ErrorIs(t, err, store.ErrNotInitialized)

			require.NoError(t, st.Init(ctx))
			t.Cleanup(func() { _ = store.CloseIfSupported(st) })
			noID := rep
			noID.ID = ""
			assert.ErrorIs(t, st.SaveReport(ctx, noID), store.ErrMissingID)
		})
	}

	assert.ErrorIs(t, store.NewSQLiteStore("").Init(ctx), store.ErrMissingPath)
}

// TestSQLiteStore_Reopen checks that reports survive Close and Init.
func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.db")
	rep := report(t, profile.Complex, t0)

	st := store.NewSQLiteStore(path)
	require.NoError(t, st.Init(ctx))
	require.NoError(t, st.SaveReport(ctx, rep))
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "Close is idempotent")

	_, err := st.ListReports(ctx)
	require.ErrorIs(t, err, store.ErrNotInitialized)

	require.NoError(t, st.Init(ctx))
	defer st.Close()
	got, ok, err := st.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rep.Violations, got.Violations)
	assert.Equal(t, rep.Stats, got.Stats)
}

// TestNewStore covers backend selection.
func TestNewStore(t *testing.T) {
	st, err := store.NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, st)
	assert.NoError(t, store.CloseIfSupported(st))

	st, err = store.NewStore(store.KindSQLite, filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, st)

	_, err = store.NewStore(store.KindSQLite, "")
	assert.ErrorIs(t, err, store.ErrMissingPath)
	_, err = store.NewStore("postgres", "")
	assert.ErrorIs(t, err, store.ErrUnsupportedBackend)
}

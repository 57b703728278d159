package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
	"github.com/couchcryptid/coastal-monitor/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck // test cleanup
	return s
}

func TestAppend_AssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.Append(ctx, 100, 5, "2024-04-26 10:00:00")
	require.NoError(t, err)
	id2, err := s.Append(ctx, 110, 6, "2024-04-26 10:00:03")
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestAppend_VisibleToSubsequentReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, 100.5, 5.25, "2024-04-26 10:00:00")
	require.NoError(t, err)

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := domain.Sample{ID: id, SeaLevel: 100.5, WindSpeed: 5.25, Timestamp: "2024-04-26 10:00:00"}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("sample mismatch (-want +got):\n%s", diff)
	}
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Append(ctx, 100+float64(i), 5, "2024-04-26 10:00:00")
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 104.0, got[0].SeaLevel)
	assert.Equal(t, 103.0, got[1].SeaLevel)
	assert.Equal(t, 102.0, got[2].SeaLevel)
}

func TestRecent_FewerThanRequested(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, 100, 5, "2024-04-26 10:00:00")
	require.NoError(t, err)

	got, err := s.Recent(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAllAscending_OldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := s.Append(ctx, 100+float64(i), 5, "2024-04-26 10:00:00")
		require.NoError(t, err)
	}

	got, err := s.AllAscending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].ID, got[i-1].ID)
	}
	assert.Equal(t, 100.0, got[0].SeaLevel)
	assert.Equal(t, 103.0, got[3].SeaLevel)
}

func TestCheckReadiness(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.CheckReadiness(context.Background()))
}

package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	s, db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return s, db
}

func TestSetAndGet(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "abc"))

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestGet_Absent(t *testing.T) {
	s, _ := setupStore(t)

	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_LastWriteWins(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "old"))
	require.NoError(t, s.Set(ctx, "k", "new"))

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestRemove_IsIdempotent(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "x", "1"))
	require.NoError(t, s.Remove(ctx, "x"))
	require.NoError(t, s.Remove(ctx, "x"))

	_, ok, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	s, db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "persisted"))
	require.NoError(t, db.Close())

	s, db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestErrorsAreWrapped(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get local_storage[k]")

	err = s.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "failed to set local_storage[k]")

	err = s.Remove(ctx, "k")
	require.ErrorContains(t, err, "failed to remove local_storage[k]")
}

package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/mindhaven/internal/client/storage"
	"github.com/dmitrijs2005/mindhaven/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredToken(t *testing.T) {
	ctx := context.Background()
	store, db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tok := NewStoredToken(store)

	got, err := tok.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tok.Save(ctx, "t1"))
	require.NoError(t, tok.Save(ctx, "t2"))

	got, err = tok.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t2", got)

	raw, ok, err := store.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t2", raw)

	require.NoError(t, tok.Clear(ctx))
	require.NoError(t, tok.Clear(ctx))
	got, err = tok.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoredToken_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	store, db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tok := NewStoredToken(store)
	_, err = tok.Load(ctx)
	assert.ErrorContains(t, err, "load token")
	assert.ErrorContains(t, tok.Save(ctx, "x"), "save token")
}

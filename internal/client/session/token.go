package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindhaven/internal/client/storage"
	"github.com/dmitrijs2005/mindhaven/internal/common"
)

// TokenStore persists the credential token between runs.
type TokenStore interface {
	// Load returns the stored token, or "" when there is none.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// StoredToken keeps the token in a storage.Store under common.TokenStorageKey.
// It satisfies both TokenStore and api.TokenSource.
type StoredToken struct {
	store storage.Store
}

func NewStoredToken(s storage.Store) *StoredToken {
	return &StoredToken{store: s}
}

func (t *StoredToken) Load(ctx context.Context) (string, error) {
	v, ok, err := t.store.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (t *StoredToken) Save(ctx context.Context, token string) error {
	if err := t.store.Set(ctx, common.TokenStorageKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (t *StoredToken) Clear(ctx context.Context) error {
	if err := t.store.Remove(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Token implements api.TokenSource.
func (t *StoredToken) Token(ctx context.Context) (string, error) {
	return t.Load(ctx)
}

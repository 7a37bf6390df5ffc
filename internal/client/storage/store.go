package storage

import (
	"context"
	"database/sql"
)

// Store is a string key-value store with last-write-wins semantics.
type Store interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// DBTX is the subset of database/sql used by SQLiteStore.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

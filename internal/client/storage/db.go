package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mindhaven/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate local storage: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn, migrates it
// and returns the store together with the handle the caller must close.
func Open(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open local storage: %w", err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return NewSQLiteStore(db), db, nil
}

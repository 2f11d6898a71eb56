package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// UpPostgres applies every pending Postgres migration to db.
func UpPostgres(ctx context.Context, db *sql.DB) error {
	return up(ctx, goose.DialectPostgres, db, Postgres)
}

// UpSQLite applies every pending sqlite migration to db.
func UpSQLite(ctx context.Context, db *sql.DB) error {
	return up(ctx, goose.DialectSQLite3, db, SQLite)
}

func up(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations: create %s provider: %w", dialect, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations: %s up: %w", dialect, err)
	}
	return nil
}

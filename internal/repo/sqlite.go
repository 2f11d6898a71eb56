package repo

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rupaladventures/basecamp/migrations"
)

// OpenPostsDB opens (creating if needed) the sqlite file at path, checks the
// connection and applies pending migrations. The caller closes the handle.
func OpenPostsDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenPostsDB: open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenPostsDB: ping: %w", err)
	}

	if err := migrations.UpSQLite(ctx, db); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("repo.OpenPostsDB: %w (also failed to close db: %v)", err, cerr)
		}
		return nil, fmt.Errorf("repo.OpenPostsDB: %w", err)
	}

	return db, nil
}

// Package repo contains all store access for the Rupal Adventures backend.
// Inquiries and bookings live in Postgres; authored posts live in an embedded
// sqlite file. Each record kind also has an in-memory implementation with the
// same query semantics, used by service tests and local development.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by pgx.Row, pgx.Rows and *sql.Row(s), so one scan
// helper serves single-row and list queries.
type scanner interface {
	Scan(dest ...any) error
}

// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres holds the *.sql migrations for the inquiries/bookings database.
// Pass this to goose.NewProvider with goose.DialectPostgres.
var Postgres = mustSub("postgres")

// SQLite holds the *.sql migrations for the embedded posts database.
// Pass this to goose.NewProvider with goose.DialectSQLite3.
var SQLite = mustSub("sqlite")

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}

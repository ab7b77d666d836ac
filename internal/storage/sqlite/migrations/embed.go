package migrations

import "embed"

// FS contains embedded SQLite migrations for the accounts table.
//
//go:embed *.sql
var FS embed.FS

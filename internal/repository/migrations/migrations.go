// Package migrations embeds the ordered goose SQL migrations that own the
// EcoWatt schema: table creation, the legacy-row password backfill, and the
// one-time tip catalog seed.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

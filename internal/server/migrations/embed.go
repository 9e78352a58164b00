// Package migrations embeds the goose SQL migrations for the category store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

// Package migrations embeds the schema for the visit log and brewery
// directory tables.
package migrations

import "embed"

// FS holds the goose *.sql files. cmd/pints migrate and testutil both
// build a goose provider over it.
//
//go:embed *.sql
var FS embed.FS

// Package glossarymigrations embeds the goose SQL migrations for the
// glossary schema so cmd/api can apply them at startup without shipping
// loose files.
package glossarymigrations

import "embed"

//go:embed *.sql
var FS embed.FS

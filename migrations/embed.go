// Package migrations embeds the goose SQL migrations so the migrator can
// run them from any binary without access to the source tree.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Package migrations embeds the SQL migration files so the server binary
// can apply them at startup without relying on filesystem layout.
package migrations

import "embed"

// FS holds the embedded SQL migrations, applied with goose.
//
//go:embed *.sql
var FS embed.FS

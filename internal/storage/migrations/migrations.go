// Package migrations embeds the SQL schema for each storage backend
package migrations

import "embed"

// FS holds one subdirectory per backend: sqlite/ and postgres/
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

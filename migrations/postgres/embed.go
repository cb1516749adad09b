// Package migrations embebe los archivos SQL de migración.
package migrations

import "embed"

// FS contiene las migraciones *_up.sql y *_down.sql de PostgreSQL.
//
//go:embed *.sql
var FS embed.FS

// Package migrations contiene el esquema SQLite embebido.
package migrations

import "embed"

// FS contiene las migraciones *.sql en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS

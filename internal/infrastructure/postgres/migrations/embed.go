// Package migrations contiene el esquema PostgreSQL embebido.
package migrations

import "embed"

// FS contiene las migraciones *.sql en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS

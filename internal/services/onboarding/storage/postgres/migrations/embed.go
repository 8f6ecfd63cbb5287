package migrations

import "embed"

// FS contains embedded Postgres migrations for onboarding storage.
//
//go:embed *.sql
var FS embed.FS

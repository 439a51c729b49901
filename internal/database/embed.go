package database

import "embed"

// EmbedMigrations contains the SQL migrations for every supported driver.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var EmbedMigrations embed.FS

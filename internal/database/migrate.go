package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/suar-net/suar-rest/internal/config"
)

// RunMigrations applies all pending migrations for the given driver.
func RunMigrations(db *sql.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case config.DriverPostgres:
		dialect, dir = "postgres", "migrations/postgres"
	case config.DriverSQLite:
		dialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	goose.SetBaseFS(EmbedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

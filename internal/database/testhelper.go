package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/suar-net/suar-rest/internal/config"
)

// OpenTestDB opens a migrated sqlite database in t.TempDir() and registers cleanup.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := ConnectDB(config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db, config.DriverSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}

// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"smart-bulb-backend/internal/database"
	"smart-bulb-backend/internal/logging"

	"gorm.io/gorm/logger"
)

// New opens a file-backed SQLite database under t.TempDir with the schema applied.
// The database is closed when the test finishes.
func New(t testing.TB) *database.DB {
	t.Helper()

	backend := database.NewSQLiteBackend(filepath.Join(t.TempDir(), "test.db"))
	db, err := database.Open(backend, logger.Discard)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.EnsureSchema(context.Background(), logging.Discard()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	return db
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *database.DB, table string) int64 {
	t.Helper()

	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

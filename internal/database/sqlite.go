package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// busyTimeoutMs bounds how long a statement waits on a locked database file.
const busyTimeoutMs = 5000

// SQLiteBackend stores everything in a single database file.
// Foreign keys are left unenforced, matching existing deployments.
type SQLiteBackend struct {
	path string
}

func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

// Path returns the database file location.
func (b *SQLiteBackend) Path() string { return b.path }

func (b *SQLiteBackend) Dialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?_busy_timeout=%d", b.path, busyTimeoutMs))
}

func (b *SQLiteBackend) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bulbs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_email TEXT NOT NULL,
			bulb_id TEXT NOT NULL,
			bulb_name TEXT NOT NULL,
			room_name TEXT,
			is_simulated INTEGER DEFAULT 0,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_email) REFERENCES users(email),
			UNIQUE(user_email, bulb_id)
		)`,
	}
}

func (b *SQLiteBackend) SimulatedColumnStatement() string {
	return `ALTER TABLE bulbs ADD COLUMN is_simulated INTEGER DEFAULT 0`
}

func (b *SQLiteBackend) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// ConfigurePool pins SQLite to a single connection; it only supports one writer.
func (b *SQLiteBackend) ConfigurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)
}

package database

import (
	"database/sql"
	"fmt"

	"smart-bulb-backend/internal/config"

	"gorm.io/gorm"
)

// Backend hides the differences between the supported SQL engines.
// One implementation exists per engine; it is chosen once at startup.
type Backend interface {
	// Name is the DB_TYPE value this backend serves.
	Name() string

	// Dialector opens the engine through gorm, which rewrites the
	// repositories' ? placeholders into the engine's own syntax.
	Dialector() gorm.Dialector

	// SchemaStatements returns idempotent CREATE TABLE statements
	// for the users and bulbs tables, in execution order.
	SchemaStatements() []string

	// SimulatedColumnStatement adds bulbs.is_simulated to schemas that
	// predate it. It fails on schemas that already have the column.
	SimulatedColumnStatement() string

	// IsUniqueViolation reports whether err is the engine's
	// unique-constraint error.
	IsUniqueViolation(err error) bool

	// ConfigurePool sizes the connection pool for the engine.
	ConfigurePool(db *sql.DB)
}

// NewBackend returns the backend for an already-resolved database config.
func NewBackend(cfg config.DatabaseConfig) (Backend, error) {
	switch cfg.Type {
	case config.BackendSQLite:
		return NewSQLiteBackend(cfg.SQLitePath), nil
	case config.BackendPostgres:
		return NewPostgresBackend(cfg.URL), nil
	case config.BackendMySQL:
		return NewMySQLBackend(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

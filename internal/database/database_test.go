package database_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"smart-bulb-backend/internal/config"
	"smart-bulb-backend/internal/database"
	"smart-bulb-backend/internal/database/dbtest"
	"smart-bulb-backend/internal/logging"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		wantName string
		wantErr  bool
	}{
		{name: "sqlite", cfg: config.DatabaseConfig{Type: config.BackendSQLite, SQLitePath: "x.db"}, wantName: "sqlite"},
		{name: "postgres", cfg: config.DatabaseConfig{Type: config.BackendPostgres, URL: "postgres://u:p@localhost/db"}, wantName: "postgres"},
		{name: "mysql", cfg: config.DatabaseConfig{Type: config.BackendMySQL, URL: "u:p@tcp(localhost:3306)/db"}, wantName: "mysql"},
		{name: "mysql bad dsn", cfg: config.DatabaseConfig{Type: config.BackendMySQL, URL: "not a dsn"}, wantErr: true},
		{name: "unknown", cfg: config.DatabaseConfig{Type: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := database.NewBackend(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, backend.Name())
			assert.Len(t, backend.SchemaStatements(), 2)
			assert.Contains(t, backend.SimulatedColumnStatement(), "is_simulated")
		})
	}
}

func TestMySQLBackend_NormalizesDSN(t *testing.T) {
	backend, err := database.NewMySQLBackend("bulbs:secret@tcp(db:3306)/bulbs")
	require.NoError(t, err)

	cfg, err := mysqldriver.ParseDSN(backend.DSN())
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.True(t, cfg.ClientFoundRows)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])
	assert.Equal(t, "bulbs", cfg.DBName)
}

func TestMySQLBackend_SchemaUsesBinaryCollation(t *testing.T) {
	backend, err := database.NewMySQLBackend("u:p@tcp(localhost:3306)/db")
	require.NoError(t, err)

	for _, stmt := range backend.SchemaStatements() {
		assert.Contains(t, stmt, "COLLATE=utf8mb4_bin")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.EnsureSchema(context.Background(), logging.Discard()))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("bulbs"))
	assert.True(t, db.Migrator().HasColumn("bulbs", "is_simulated"))
	assert.True(t, db.Migrator().HasColumn("bulbs", "last_seen"))
}

func TestEnsureSchema_AddsSimulatedColumnToLegacySchema(t *testing.T) {
	backend := database.NewSQLiteBackend(filepath.Join(t.TempDir(), "legacy.db"))
	db, err := database.Open(backend, logger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Exec(`CREATE TABLE bulbs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_email TEXT NOT NULL,
		bulb_id TEXT NOT NULL,
		bulb_name TEXT NOT NULL,
		room_name TEXT,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_email, bulb_id)
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO bulbs (user_email, bulb_id, bulb_name) VALUES ('a@b.com', 'old-1', 'Lamp')`).Error)
	require.False(t, db.Migrator().HasColumn("bulbs", "is_simulated"))

	require.NoError(t, db.EnsureSchema(context.Background(), logging.Discard()))

	assert.True(t, db.Migrator().HasColumn("bulbs", "is_simulated"))
	var flag int
	require.NoError(t, db.Raw(`SELECT is_simulated FROM bulbs WHERE bulb_id = ?`, "old-1").Scan(&flag).Error)
	assert.Equal(t, 0, flag)
}

func TestSQLiteBackend_IsUniqueViolation(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, "a@b.com", "digest").Error)

	err := db.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, "a@b.com", "digest").Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	err = db.Exec(`INSERT INTO users (email) VALUES (?)`, "c@d.com").Error
	require.Error(t, err, "password_hash is NOT NULL")
	assert.False(t, db.IsUniqueViolation(err))

	assert.False(t, db.IsUniqueViolation(nil))
}

func TestPostgresBackend_IsUniqueViolation(t *testing.T) {
	backend := database.NewPostgresBackend("postgres://localhost/db")

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	notNull := &pgconn.PgError{Code: "23502"}

	assert.True(t, backend.IsUniqueViolation(dup))
	assert.False(t, backend.IsUniqueViolation(notNull))
	assert.False(t, backend.IsUniqueViolation(errors.New("boom")))
}

func TestMySQLBackend_IsUniqueViolation(t *testing.T) {
	backend, err := database.NewMySQLBackend("u:p@tcp(localhost:3306)/db")
	require.NoError(t, err)

	dup := fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})

	assert.True(t, backend.IsUniqueViolation(dup))
	assert.False(t, backend.IsUniqueViolation(&mysqldriver.MySQLError{Number: 1048}))
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	cfg := &config.Config{
		Database: config.DatabaseConfig{Type: config.BackendSQLite, SQLitePath: path},
		Server:   config.ServerConfig{GinMode: "release"},
	}
	var buf bytes.Buffer

	db, err := database.Connect(cfg, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "sqlite", db.Backend().Name())
	assert.NoError(t, db.Ping(context.Background()))

	sqliteBackend, ok := db.Backend().(*database.SQLiteBackend)
	require.True(t, ok)
	assert.Equal(t, path, sqliteBackend.Path())
	assert.Contains(t, buf.String(), "using sqlite database file")
	assert.Contains(t, buf.String(), path)
}

package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgresBackend talks to a PostgreSQL server through pgx.
type PostgresBackend struct {
	dsn string
}

func NewPostgresBackend(dsn string) *PostgresBackend {
	return &PostgresBackend{dsn: dsn}
}

func (b *PostgresBackend) Name() string { return "postgres" }

func (b *PostgresBackend) Dialector() gorm.Dialector {
	return postgres.Open(b.dsn)
}

func (b *PostgresBackend) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bulbs (
			id SERIAL PRIMARY KEY,
			user_email TEXT NOT NULL REFERENCES users(email),
			bulb_id TEXT NOT NULL,
			bulb_name TEXT NOT NULL,
			room_name TEXT,
			is_simulated BOOLEAN DEFAULT FALSE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_email, bulb_id)
		)`,
	}
}

func (b *PostgresBackend) SimulatedColumnStatement() string {
	return `ALTER TABLE bulbs ADD COLUMN is_simulated BOOLEAN DEFAULT FALSE`
}

func (b *PostgresBackend) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (b *PostgresBackend) ConfigurePool(db *sql.DB) {
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)
}

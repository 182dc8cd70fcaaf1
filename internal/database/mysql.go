package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLBackend talks to a MySQL/MariaDB server.
type MySQLBackend struct {
	dsn string
}

// NewMySQLBackend parses a go-sql-driver DSN and forces the options the
// repositories rely on: parseTime for timestamp columns, UTC, utf8mb4 and
// matched (not changed) row counts so an update to identical values still
// reports its row.
func NewMySQLBackend(dsn string) (*MySQLBackend, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing mysql DATABASE_URL: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return &MySQLBackend{dsn: cfg.FormatDSN()}, nil
}

func (b *MySQLBackend) Name() string { return "mysql" }

// DSN returns the normalized connection string.
func (b *MySQLBackend) DSN() string { return b.dsn }

func (b *MySQLBackend) Dialector() gorm.Dialector {
	return mysql.Open(b.dsn)
}

// SchemaStatements uses a binary collation so emails and bulb ids
// compare case-sensitively, as they do on the other backends.
func (b *MySQLBackend) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(64) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
		`CREATE TABLE IF NOT EXISTS bulbs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_email VARCHAR(255) NOT NULL,
			bulb_id VARCHAR(255) NOT NULL,
			bulb_name VARCHAR(255) NOT NULL,
			room_name VARCHAR(255) NULL,
			is_simulated BOOLEAN DEFAULT FALSE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_email) REFERENCES users(email),
			UNIQUE KEY uq_bulbs_owner_device (user_email, bulb_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	}
}

func (b *MySQLBackend) SimulatedColumnStatement() string {
	return `ALTER TABLE bulbs ADD COLUMN is_simulated BOOLEAN DEFAULT FALSE`
}

func (b *MySQLBackend) IsUniqueViolation(err error) bool {
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func (b *MySQLBackend) ConfigurePool(db *sql.DB) {
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)
}

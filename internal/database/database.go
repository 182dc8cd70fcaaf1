package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smart-bulb-backend/internal/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the gorm handle together with the backend it was opened on.
type DB struct {
	*gorm.DB
	backend Backend
}

// Connect opens the configured backend, sizes its pool and verifies it with a ping.
func Connect(cfg *config.Config, log *slog.Logger) (*DB, error) {
	backend, err := NewBackend(cfg.Database)
	if err != nil {
		return nil, err
	}
	if sqliteBackend, ok := backend.(*SQLiteBackend); ok {
		log.Info("using sqlite database file", "path", sqliteBackend.Path())
	}
	return Open(backend, newGormLogger(log, cfg.Server.GinMode))
}

// Open connects through an explicit backend.
func Open(backend Backend, gormLogger logger.Interface) (*DB, error) {
	db, err := gorm.Open(backend.Dialector(), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", backend.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting %s connection pool: %w", backend.Name(), err)
	}

	backend.ConfigurePool(sqlDB)

	wrapped := &DB{DB: db, backend: backend}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := wrapped.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return wrapped, nil
}

// Backend returns the engine this handle is bound to.
func (db *DB) Backend() Backend {
	return db.backend
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging %s: %w", db.backend.Name(), err)
	}
	return nil
}

// IsUniqueViolation reports whether err came from a unique constraint.
func (db *DB) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || db.backend.IsUniqueViolation(err)
}

// Close releases every pooled connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("getting connection pool: %w", err)
	}
	return sqlDB.Close()
}

// gormWriter forwards gorm's printf-style output into slog.
type gormWriter struct {
	log *slog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...), "component", "gorm")
}

// newGormLogger logs every statement in debug mode and only errors otherwise.
func newGormLogger(log *slog.Logger, ginMode string) logger.Interface {
	level := logger.Error
	if ginMode == "debug" {
		level = logger.Info
	}

	return logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

package database

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureSchema creates the users and bulbs tables when they are missing and
// back-fills bulbs.is_simulated on older schemas. It is safe to run on every start.
//
// The column back-fill is attempted unconditionally; its failure means the
// column already exists and is not reported.
func (db *DB) EnsureSchema(ctx context.Context, log *slog.Logger) error {
	conn := db.WithContext(ctx)

	for _, stmt := range db.backend.SchemaStatements() {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating schema on %s: %w", db.backend.Name(), err)
		}
	}

	if err := conn.Exec(db.backend.SimulatedColumnStatement()).Error; err != nil {
		log.Debug("is_simulated column already exists", "backend", db.backend.Name(), "detail", err.Error())
	} else {
		log.Info("added is_simulated column to bulbs table", "backend", db.backend.Name())
	}

	log.Info("database initialised", "backend", db.backend.Name())
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"smart-bulb-backend/internal/database"
	"smart-bulb-backend/internal/models"
)

// errEmptyPatch guards against an UPDATE with no SET clause.
var errEmptyPatch = errors.New("bulb patch has no fields")

type BulbRepository struct {
	db *database.DB
}

func NewBulbRepo(db *database.DB) *BulbRepository {
	return &BulbRepository{db: db}
}

// Exists reports whether email already owns a bulb with bulbID.
func (r *BulbRepository) Exists(ctx context.Context, email, bulbID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bulb{}).
		Where("user_email = ? AND bulb_id = ?", email, bulbID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking bulb %s/%s: %w", email, bulbID, err)
	}
	return count > 0, nil
}

// Create registers a bulb. Registering the same (email, bulb id) twice
// fails with ErrDuplicate.
func (r *BulbRepository) Create(ctx context.Context, bulb *models.Bulb) error {
	if err := r.db.WithContext(ctx).Create(bulb).Error; err != nil {
		if r.db.IsUniqueViolation(err) {
			return fmt.Errorf("bulb %s/%s: %w", bulb.UserEmail, bulb.BulbID, ErrDuplicate)
		}
		return fmt.Errorf("creating bulb %s/%s: %w", bulb.UserEmail, bulb.BulbID, err)
	}
	return nil
}

// ListByOwner returns the bulbs of email, newest first.
// With simulated=false, rows whose flag is NULL are included.
func (r *BulbRepository) ListByOwner(ctx context.Context, email string, simulated bool) ([]models.Bulb, error) {
	query := r.db.WithContext(ctx).Where("user_email = ?", email)
	if simulated {
		query = query.Where("is_simulated = ?", true)
	} else {
		query = query.Where("(is_simulated = ? OR is_simulated IS NULL)", false)
	}

	var bulbs []models.Bulb
	if err := query.Order("added_at DESC, id DESC").Find(&bulbs).Error; err != nil {
		return nil, fmt.Errorf("listing bulbs for %s: %w", email, err)
	}
	return bulbs, nil
}

// Update applies only the fields present in patch.
func (r *BulbRepository) Update(ctx context.Context, email, bulbID string, patch models.BulbPatch) error {
	if patch.Empty() {
		return errEmptyPatch
	}

	result := r.db.WithContext(ctx).
		Model(&models.Bulb{}).
		Where("user_email = ? AND bulb_id = ?", email, bulbID).
		Updates(patch.Columns())
	if result.Error != nil {
		return fmt.Errorf("updating bulb %s/%s: %w", email, bulbID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bulb %s/%s: %w", email, bulbID, ErrNotFound)
	}
	return nil
}

// Delete removes a bulb registration.
func (r *BulbRepository) Delete(ctx context.Context, email, bulbID string) error {
	result := r.db.WithContext(ctx).
		Where("user_email = ? AND bulb_id = ?", email, bulbID).
		Delete(&models.Bulb{})
	if result.Error != nil {
		return fmt.Errorf("deleting bulb %s/%s: %w", email, bulbID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bulb %s/%s: %w", email, bulbID, ErrNotFound)
	}
	return nil
}

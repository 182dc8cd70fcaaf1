package repository

import (
	"context"
	"errors"
	"fmt"

	"smart-bulb-backend/internal/database"
	"smart-bulb-backend/internal/models"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *database.DB
}

func NewAccountRepo(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// EmailExists reports whether an account is registered under email.
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking account %s: %w", email, err)
	}
	return count > 0, nil
}

// FindByEmail finds an account by email
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("finding account %s: %w", email, err)
	}
	return &account, nil
}

// Create inserts a new account. A second account for the same email
// fails with ErrDuplicate.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if r.db.IsUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", account.Email, ErrDuplicate)
		}
		return fmt.Errorf("creating account %s: %w", account.Email, err)
	}
	return nil
}

// UpdatePassword overwrites the stored digest for email.
func (r *AccountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("updating password for %s: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	return nil
}

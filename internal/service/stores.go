package service

import (
	"context"

	"smart-bulb-backend/internal/models"
)

// AccountStore is the persistence the account operations need.
// *repository.AccountRepository satisfies it.
type AccountStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// BulbStore is the persistence the bulb operations need.
// *repository.BulbRepository satisfies it.
type BulbStore interface {
	Exists(ctx context.Context, email, bulbID string) (bool, error)
	Create(ctx context.Context, bulb *models.Bulb) error
	ListByOwner(ctx context.Context, email string, simulated bool) ([]models.Bulb, error)
	Update(ctx context.Context, email, bulbID string, patch models.BulbPatch) error
	Delete(ctx context.Context, email, bulbID string) error
}

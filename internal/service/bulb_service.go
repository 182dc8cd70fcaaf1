package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"smart-bulb-backend/internal/models"
	"smart-bulb-backend/internal/repository"
)

// AccountLookup is the single account query the bulb operations need.
type AccountLookup interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type BulbService struct {
	accounts AccountLookup
	bulbs    BulbStore
	log      *slog.Logger
}

func NewBulbService(accounts AccountLookup, bulbs BulbStore, log *slog.Logger) *BulbService {
	return &BulbService{
		accounts: accounts,
		bulbs:    bulbs,
		log:      log.With("component", "bulb_service"),
	}
}

// AddBulbInput carries the fields of a new registration.
// An empty RoomName is stored as NULL; a nil IsSimulated as false.
type AddBulbInput struct {
	Email       string
	BulbID      string
	BulbName    string
	RoomName    string
	IsSimulated *bool
}

// AddBulb registers a bulb under an existing account.
func (s *BulbService) AddBulb(ctx context.Context, in AddBulbInput) error {
	email := strings.TrimSpace(in.Email)
	bulbID := strings.TrimSpace(in.BulbID)
	bulbName := strings.TrimSpace(in.BulbName)
	roomName := strings.TrimSpace(in.RoomName)

	if email == "" || bulbID == "" || bulbName == "" {
		return newError(KindInvalidInput, "Email, bulb_id, and bulb_name are required")
	}

	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		s.log.Error("add bulb failed", "email", email, "bulb_id", bulbID, "error", err)
		return wrapError(KindInternal, "Failed to add bulb", err)
	}
	if !exists {
		return newError(KindNotFound, "User not found")
	}

	taken, err := s.bulbs.Exists(ctx, email, bulbID)
	if err != nil {
		s.log.Error("add bulb failed", "email", email, "bulb_id", bulbID, "error", err)
		return wrapError(KindInternal, "Failed to add bulb", err)
	}
	if taken {
		return newError(KindConflict, "Bulb already added")
	}

	simulated := in.IsSimulated != nil && *in.IsSimulated
	bulb := &models.Bulb{
		UserEmail:   email,
		BulbID:      bulbID,
		BulbName:    bulbName,
		IsSimulated: &simulated,
	}
	if roomName != "" {
		bulb.RoomName = &roomName
	}

	if err := s.bulbs.Create(ctx, bulb); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return wrapError(KindConflict, "Bulb already added", err)
		}
		s.log.Error("add bulb failed", "email", email, "bulb_id", bulbID, "error", err)
		return wrapError(KindInternal, "Failed to add bulb", err)
	}

	s.log.Info("bulb added", "email", email, "bulb_id", bulbID, "simulated", simulated)
	return nil
}

// ListBulbs returns the bulbs of one mode, newest first. A nil simulatorMode
// selects simulated bulbs.
func (s *BulbService) ListBulbs(ctx context.Context, email string, simulatorMode *bool) ([]models.BulbResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newError(KindInvalidInput, "Email is required")
	}

	simulated := simulatorMode == nil || *simulatorMode

	bulbs, err := s.bulbs.ListByOwner(ctx, email, simulated)
	if err != nil {
		s.log.Error("list bulbs failed", "email", email, "error", err)
		return nil, wrapError(KindInternal, "Failed to retrieve bulbs", err)
	}

	out := make([]models.BulbResponse, 0, len(bulbs))
	for _, b := range bulbs {
		out = append(out, b.ToResponse())
	}

	s.log.Debug("bulbs listed", "email", email, "simulator_mode", simulated, "count", len(out))
	return out, nil
}

// UpdateBulb renames a bulb or moves it to another room. Blank fields are
// treated as not supplied.
func (s *BulbService) UpdateBulb(ctx context.Context, email, bulbID string, bulbName, roomName *string) error {
	email = strings.TrimSpace(email)
	bulbID = strings.TrimSpace(bulbID)

	if email == "" || bulbID == "" {
		return newError(KindInvalidInput, "Email and bulb_id are required")
	}

	patch := models.NewBulbPatch(bulbName, roomName)
	if patch.Empty() {
		return newError(KindInvalidInput, "At least one field to update is required")
	}

	if err := s.bulbs.Update(ctx, email, bulbID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return wrapError(KindNotFound, "Bulb not found", err)
		}
		s.log.Error("update bulb failed", "email", email, "bulb_id", bulbID, "error", err)
		return wrapError(KindInternal, "Failed to update bulb", err)
	}

	s.log.Info("bulb updated", "email", email, "bulb_id", bulbID)
	return nil
}

// DeleteBulb removes a registration.
func (s *BulbService) DeleteBulb(ctx context.Context, email, bulbID string) error {
	email = strings.TrimSpace(email)
	bulbID = strings.TrimSpace(bulbID)

	if email == "" || bulbID == "" {
		return newError(KindInvalidInput, "Email and bulb_id are required")
	}

	if err := s.bulbs.Delete(ctx, email, bulbID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return wrapError(KindNotFound, "Bulb not found", err)
		}
		s.log.Error("delete bulb failed", "email", email, "bulb_id", bulbID, "error", err)
		return wrapError(KindInternal, "Failed to delete bulb", err)
	}

	s.log.Info("bulb deleted", "email", email, "bulb_id", bulbID)
	return nil
}

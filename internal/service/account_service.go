package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"smart-bulb-backend/internal/models"
	"smart-bulb-backend/internal/repository"
	"smart-bulb-backend/pkg/utils"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 8

type AccountService struct {
	accounts AccountStore
	log      *slog.Logger
}

func NewAccountService(accounts AccountStore, log *slog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		log:      log.With("component", "account_service"),
	}
}

// CheckEmail reports whether email is still free to register.
func (s *AccountService) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, newError(KindInvalidInput, "Email is required")
	}

	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		s.log.Error("check email failed", "email", email, "error", err)
		return false, wrapError(KindInternal, "Database error", err)
	}

	return !exists, nil
}

// Register creates an account. A duplicate is reported as a conflict whether
// it is caught by the existence check or by the unique constraint.
func (s *AccountService) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return newError(KindInvalidInput, "Email and password are required")
	}
	if !utils.IsValidEmail(email) {
		return newError(KindInvalidInput, "Invalid email format")
	}
	if utils.CharCount(password) < MinPasswordLength {
		return newError(KindInvalidInput, "Password must be at least 8 characters")
	}

	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		s.log.Error("registration failed", "email", email, "error", err)
		return wrapError(KindInternal, "Registration failed", err)
	}
	if exists {
		return newError(KindConflict, "Email already registered")
	}

	account := &models.Account{
		Email:        email,
		PasswordHash: utils.HashPassword(password),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("registration lost insert race", "email", email)
			return wrapError(KindConflict, "Email already registered", err)
		}
		s.log.Error("registration failed", "email", email, "error", err)
		return wrapError(KindInternal, "Registration failed", err)
	}

	s.log.Info("user registered", "email", email)
	return nil
}

// Login checks password against the stored digest.
func (s *AccountService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return newError(KindInvalidInput, "Email and password are required")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return wrapError(KindNotFound, "Email not registered", err)
		}
		s.log.Error("login failed", "email", email, "error", err)
		return wrapError(KindInternal, "Login failed", err)
	}

	if !utils.ComparePassword(account.PasswordHash, password) {
		s.log.Info("login rejected", "email", email)
		return newError(KindUnauthorized, "Incorrect password")
	}

	s.log.Info("user logged in", "email", email)
	return nil
}

// ResetPassword replaces the stored digest. No verification code is checked
// here; the caller validates it before calling.
func (s *AccountService) ResetPassword(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return newError(KindInvalidInput, "Email and password are required")
	}
	if utils.CharCount(password) < MinPasswordLength {
		return newError(KindInvalidInput, "Password must be at least 8 characters")
	}

	if err := s.accounts.UpdatePassword(ctx, email, utils.HashPassword(password)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return wrapError(KindNotFound, "Email not registered", err)
		}
		s.log.Error("password reset failed", "email", email, "error", err)
		return wrapError(KindInternal, "Password reset failed", err)
	}

	s.log.Info("password reset", "email", email)
	return nil
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"smart-bulb-backend/internal/config"
	"smart-bulb-backend/internal/mailer"
	"smart-bulb-backend/pkg/utils"
)

// CodeLength is the exact length of a verification code, in characters.
const CodeLength = 6

// VerificationService relays caller-generated codes by email. It does not
// generate, store or check codes.
type VerificationService struct {
	mailer      mailer.Mailer
	fromName    string
	fromAddress string
	log         *slog.Logger
}

func NewVerificationService(m mailer.Mailer, cfg config.MailConfig, log *slog.Logger) *VerificationService {
	return &VerificationService{
		mailer:      m,
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		log:         log.With("component", "verification_service"),
	}
}

// SendCode mails code to email and returns the code on success.
func (s *VerificationService) SendCode(ctx context.Context, email, code string) (string, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	if email == "" || !utils.HasAtSign(email) {
		return "", newError(KindInvalidInput, "Invalid email")
	}
	if utils.CharCount(code) != CodeLength {
		return "", newError(KindInvalidInput, "Invalid code")
	}

	msg, err := mailer.VerificationMessage(s.fromName, s.fromAddress, email, code)
	if err != nil {
		s.log.Error("composing verification email failed", "email", email, "error", err)
		return "", wrapError(KindInternal, "Failed to send email", err)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("sending verification email failed", "email", email, "error", err)
		return "", wrapError(KindDeliveryFailed, "Failed to send email", err)
	}

	s.log.Info("verification code sent", "email", email)
	return code, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// PasswordService handles password change and the two-step reset flow.
// Client-side validation runs before any network call so the obvious
// mistakes never leave the machine.
type PasswordService struct {
	session *SessionService
}

// NewPasswordService creates a new PasswordService
func NewPasswordService(session *SessionService) *PasswordService {
	return &PasswordService{session: session}
}

func validateNewPassword(newPassword, confirm string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if newPassword != confirm {
		return domain.ErrPasswordMismatch
	}
	return nil
}

// Change rotates the password of the authenticated user.
func (s *PasswordService) Change(ctx context.Context, currentPassword, newPassword, confirm string) error {
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return err
	}
	if err := client.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.session.Invalidate()
		}
		return err
	}
	return nil
}

// RequestReset asks the server to deliver a reset key to the given email.
// Works unauthenticated.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	return s.session.Client().RequestPasswordReset(ctx, email)
}

// VerifyReset redeems a reset key for a new password. The key is trimmed
// and uppercased before the length check, matching the server's
// case-insensitive handling.
func (s *PasswordService) VerifyReset(ctx context.Context, email, resetKey, newPassword, confirm string) error {
	key := strings.ToUpper(strings.TrimSpace(resetKey))
	if len(key) != domain.ResetKeyLength {
		return domain.ErrInvalidResetKey
	}
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}
	return s.session.Client().VerifyPasswordReset(ctx, email, key, newPassword)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService_ChangeValidation(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	passwords := NewPasswordService(loggedInSession(t, fake))

	err := passwords.Change(context.Background(), "secret123", "short", "short")
	assert.True(t, errors.Is(err, domain.ErrPasswordTooShort))

	err = passwords.Change(context.Background(), "secret123", "newsecret", "different")
	assert.True(t, errors.Is(err, domain.ErrPasswordMismatch))
}

func TestPasswordService_Change(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	passwords := NewPasswordService(loggedInSession(t, fake))

	err := passwords.Change(context.Background(), "wrong-current", "newsecret", "newsecret")
	require.Error(t, err)
	assert.Equal(t, "Current password is incorrect", domain.UserMessage(err, "Change failed"))

	require.NoError(t, passwords.Change(context.Background(), "secret123", "newsecret", "newsecret"))
	assert.Equal(t, "newsecret", fake.Password)
}

func TestPasswordService_ResetFlow(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	session, _ := newTestSession(t, fake)
	passwords := NewPasswordService(session)

	require.NoError(t, passwords.RequestReset(context.Background(), "u@x.com"))

	// The key is case-insensitive and tolerates surrounding whitespace
	err := passwords.VerifyReset(context.Background(), "u@x.com", " abc123 ", "newsecret", "newsecret")
	require.NoError(t, err)
	assert.Equal(t, "newsecret", fake.Password)
}

func TestPasswordService_ResetValidation(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	session, _ := newTestSession(t, fake)
	passwords := NewPasswordService(session)

	err := passwords.VerifyReset(context.Background(), "u@x.com", "AB12", "newsecret", "newsecret")
	assert.True(t, errors.Is(err, domain.ErrInvalidResetKey))

	err = passwords.VerifyReset(context.Background(), "u@x.com", "ABC123", "newsecret", "other")
	assert.True(t, errors.Is(err, domain.ErrPasswordMismatch))

	err = passwords.VerifyReset(context.Background(), "u@x.com", "ZZZ999", "newsecret", "newsecret")
	require.Error(t, err)
	assert.Equal(t, "Invalid reset key", domain.UserMessage(err, "Reset failed"))
}

package store

import (
	"errors"
	"testing"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadToken()
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, s.SaveToken("abc123"))

	token, err := s.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	// Overwrite keeps a single value
	require.NoError(t, s.SaveToken("def456"))
	token, err = s.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "def456", token)
}

func TestStore_ClearToken(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveToken("abc123"))
	require.NoError(t, s.ClearToken())

	_, err := s.LoadToken()
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Clearing twice is fine
	require.NoError(t, s.ClearToken())
}

func TestStore_CurrencyRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadCurrency()
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	want, ok := domain.CurrencyByCode("EUR")
	require.True(t, ok)
	require.NoError(t, s.SaveCurrency(want))

	got, err := s.LoadCurrency()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveToken("persisted"))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

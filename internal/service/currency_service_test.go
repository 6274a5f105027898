package service

import (
	"errors"
	"testing"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyService_DefaultsWhenUnset(t *testing.T) {
	currencies := NewCurrencyService(testutil.NewMockPreferenceStore())

	current := currencies.Current()
	assert.Equal(t, "KSH", current.Code)
	assert.Equal(t, "KSh1,234.50", currencies.Format(decimal.RequireFromString("1234.5")))
}

func TestCurrencyService_SetPersists(t *testing.T) {
	prefs := testutil.NewMockPreferenceStore()
	currencies := NewCurrencyService(prefs)

	set, err := currencies.Set("eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", set.Code)

	stored, err := prefs.LoadCurrency()
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored.Code)

	assert.Equal(t, "€10.00", currencies.Format(decimal.NewFromInt(10)))
}

func TestCurrencyService_RejectsUnknownCode(t *testing.T) {
	currencies := NewCurrencyService(testutil.NewMockPreferenceStore())

	_, err := currencies.Set("XYZ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCurrencyService_StaleStoredCurrencyFallsBack(t *testing.T) {
	prefs := testutil.NewMockPreferenceStore()
	require.NoError(t, prefs.SaveCurrency(domain.Currency{Code: "ZWL", Symbol: "Z$", Name: "Removed"}))

	currencies := NewCurrencyService(prefs)
	assert.Equal(t, "KSH", currencies.Current().Code)
}

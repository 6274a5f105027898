package service

import (
	"errors"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CurrencyService manages the display currency preference. The preference
// only affects formatting; amounts are never converted.
type CurrencyService struct {
	prefs domain.PreferenceStore
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(prefs domain.PreferenceStore) *CurrencyService {
	return &CurrencyService{prefs: prefs}
}

// Current returns the persisted display currency, falling back to the
// default when none is stored or the stored value is unreadable.
func (s *CurrencyService) Current() domain.Currency {
	currency, err := s.prefs.LoadCurrency()
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("Stored currency unreadable, using default")
		}
		return domain.DefaultCurrency()
	}
	// Tolerate stale stored entries that are no longer in the fixed set
	if _, ok := domain.CurrencyByCode(currency.Code); !ok {
		return domain.DefaultCurrency()
	}
	return currency
}

// Set persists a new display currency by code.
func (s *CurrencyService) Set(code string) (domain.Currency, error) {
	currency, ok := domain.CurrencyByCode(code)
	if !ok {
		return domain.Currency{}, domain.ErrInvalidInput
	}
	if err := s.prefs.SaveCurrency(currency); err != nil {
		return domain.Currency{}, err
	}
	return currency, nil
}

// Format renders an amount in the current display currency.
func (s *CurrencyService) Format(amount decimal.Decimal) string {
	return s.Current().Format(amount)
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormat(t *testing.T) {
	usd, _ := CurrencyByCode("USD")
	ksh, _ := CurrencyByCode("KSH")
	eur, _ := CurrencyByCode("EUR")

	tests := []struct {
		name     string
		currency Currency
		amount   string
		want     string
	}{
		{"two decimals always", usd, "5", "$5.00"},
		{"rounds to cents", usd, "5.005", "$5.01"},
		{"thousands separator", usd, "1234567.89", "$1,234,567.89"},
		{"exactly one thousand", ksh, "1000", "KSh1,000.00"},
		{"below one thousand", ksh, "999.99", "KSh999.99"},
		{"zero", eur, "0", "€0.00"},
		{"negative", usd, "-1234.5", "-$1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.currency.Format(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrencyFormatPtr_NilIsZero(t *testing.T) {
	usd, _ := CurrencyByCode("USD")
	assert.Equal(t, "$0.00", usd.FormatPtr(nil))

	amount := decimal.RequireFromString("3.5")
	assert.Equal(t, "$3.50", usd.FormatPtr(&amount))
}

func TestCurrencyByCode(t *testing.T) {
	got, ok := CurrencyByCode("usd")
	assert.True(t, ok)
	assert.Equal(t, "USD", got.Code)

	_, ok = CurrencyByCode("BTC")
	assert.False(t, ok)
}

func TestDefaultCurrency(t *testing.T) {
	assert.Equal(t, "KSH", DefaultCurrency().Code)
}

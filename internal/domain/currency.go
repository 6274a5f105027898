package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a display preference only. Amounts are never converted
// between currencies, only relabeled.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies is the fixed set the user may choose from. The first entry is
// the default.
var Currencies = []Currency{
	{Code: "KSH", Symbol: "KSh", Name: "Kenyan Shilling"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
}

// DefaultCurrency returns the default display currency.
func DefaultCurrency() Currency {
	return Currencies[0]
}

// CurrencyByCode looks up a currency case-insensitively.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Currency{}, false
}

// Format renders an amount with the currency symbol, thousands separators
// and exactly two decimal places, e.g. "KSh1,234.50".
func (c Currency) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(c.Symbol)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPtr is Format with a nil-tolerant amount: missing values render as
// zero since formatting feeds read-only views.
func (c Currency) FormatPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return c.Format(decimal.Zero)
	}
	return c.Format(*amount)
}

package domain

import "github.com/shopspring/decimal"

// Budget is a server-owned monthly spending limit for one category. The
// server does not deduplicate (month, year, category) tuples; consumers
// treat the first match as authoritative.
type Budget struct {
	ID       int64
	Month    int
	Year     int
	Amount   decimal.Decimal
	Category Category
}

// BudgetDraft holds the fields the user supplies when creating or updating
// a budget.
type BudgetDraft struct {
	Month    int
	Year     int
	Amount   decimal.Decimal
	Category Category
}

// Validate checks the draft against client-side rules before any network
// call is made.
func (d *BudgetDraft) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	if d.Year < 1000 || d.Year > 9999 {
		return ErrInvalidYear
	}
	if d.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

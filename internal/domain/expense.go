package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryHealthcare     Category = "Healthcare"
	CategoryOther          Category = "Other"
)

// Categories lists every valid expense category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealthcare,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a read-only snapshot of a server-owned expense record. Date is
// the zero time when the server sent an unparseable date; such records are
// skipped by the reporting aggregator rather than failing the whole report.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
}

// ExpenseDraft holds the fields the user supplies when creating or updating
// an expense.
type ExpenseDraft struct {
	Description string
	Amount      decimal.Decimal
	Category    Category
}

// Validate checks the draft against client-side rules before any network
// call is made.
func (d *ExpenseDraft) Validate() error {
	if d.Description == "" {
		return ErrDescriptionRequired
	}
	if d.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// ExpenseFilter narrows an expense listing. Zero values mean unfiltered.
type ExpenseFilter struct {
	Category Category
	Month    int
}

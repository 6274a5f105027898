package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyPoint is one calendar day in a monthly report. Days with no expenses
// are present with a zero amount and count so chart axes and per-day
// averages stay correct.
type DailyPoint struct {
	Day    time.Time
	Amount decimal.Decimal
	Count  int
}

// Label renders the day as it appears on the chart axis, e.g. "Mar 01".
func (p DailyPoint) Label() string {
	return p.Day.Format("Jan 02")
}

// ReportSummary is a pure projection of one month's expenses. It is
// recomputed on every fetch and never persisted.
type ReportSummary struct {
	Year             int
	Month            int
	TotalAmount      decimal.Decimal
	TransactionCount int
	// CategoryBreakdown omits categories with no expenses in the month.
	CategoryBreakdown map[Category]decimal.Decimal
	// DailySeries covers every calendar day of the month in ascending order.
	DailySeries []DailyPoint
	// BudgetWarning is the server's over-budget notice, when present.
	BudgetWarning string
}

// CategoryPercent returns the share of the total spent on the given
// category, rounded to one decimal place. A zero total yields zero for
// every category.
func (s *ReportSummary) CategoryPercent(c Category) decimal.Decimal {
	if s.TotalAmount.IsZero() {
		return decimal.Zero
	}
	amount, ok := s.CategoryBreakdown[c]
	if !ok {
		return decimal.Zero
	}
	return amount.Div(s.TotalAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// AveragePerDay divides the total by the number of calendar days in the
// month, not by days elapsed or days with data.
func (s *ReportSummary) AveragePerDay() decimal.Decimal {
	days := len(s.DailySeries)
	if days == 0 {
		return decimal.Zero
	}
	return s.TotalAmount.Div(decimal.NewFromInt(int64(days))).Round(2)
}

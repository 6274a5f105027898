package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportService builds monthly spending reports. The aggregation itself is
// the pure BuildMonthlySummary; the service adds the network fetch, the
// server-side budget warning and last-issued-wins handling for superseded
// fetches.
type ReportService struct {
	session *SessionService

	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// NewReportService creates a new ReportService
func NewReportService(session *SessionService) *ReportService {
	return &ReportService{session: session}
}

// BuildMonthlySummary derives a ReportSummary from a flat expense list for
// the selected month. It is a pure function: it never fails, holds no
// state, and records with a zero (unparseable) date or a date outside the
// month are simply excluded. The daily series covers every calendar day of
// the month, zero-filled where nothing was spent.
func BuildMonthlySummary(expenses []domain.Expense, year, month int) *domain.ReportSummary {
	first, last := util.MonthBounds(year, month)
	days := util.DaysInMonth(year, month)

	summary := &domain.ReportSummary{
		Year:              year,
		Month:             month,
		TotalAmount:       decimal.Zero,
		CategoryBreakdown: make(map[domain.Category]decimal.Decimal),
		DailySeries:       make([]domain.DailyPoint, days),
	}

	for i := range summary.DailySeries {
		summary.DailySeries[i] = domain.DailyPoint{
			Day:    first.AddDate(0, 0, i),
			Amount: decimal.Zero,
		}
	}

	for _, expense := range expenses {
		if expense.Date.IsZero() {
			continue
		}
		day := expense.Date.UTC()
		if day.Before(first) || day.After(last.AddDate(0, 0, 1)) {
			continue
		}
		idx := day.Day() - 1
		if idx < 0 || idx >= days || int(day.Month()) != month || day.Year() != year {
			continue
		}

		summary.TotalAmount = summary.TotalAmount.Add(expense.Amount)
		summary.TransactionCount++

		if existing, ok := summary.CategoryBreakdown[expense.Category]; ok {
			summary.CategoryBreakdown[expense.Category] = existing.Add(expense.Amount)
		} else {
			summary.CategoryBreakdown[expense.Category] = expense.Amount
		}

		point := &summary.DailySeries[idx]
		point.Amount = point.Amount.Add(expense.Amount)
		point.Count++
	}

	return summary
}

// FetchMonthlyReport pulls the month's expenses plus the server summary and
// aggregates them. When a newer fetch has been issued before this one
// finishes, the stale result is discarded and domain.ErrStaleRequest is
// returned so the caller keeps the most recently requested month on screen.
func (s *ReportService) FetchMonthlyReport(ctx context.Context, year, month int) (*domain.ReportSummary, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	// The server's month filter matches the month across every year, so
	// the year-aware filtering happens in BuildMonthlySummary.
	expenses, err := client.ListExpenses(ctx, domain.ExpenseFilter{Month: month})
	if err != nil {
		return nil, s.checkAuth(err)
	}

	remote, err := client.Summary(ctx, month)
	if err != nil {
		// The local aggregate is still complete; only the budget warning
		// is lost. Degrade instead of failing the report.
		log.Warn().Err(err).Int("month", month).Msg("Server summary unavailable")
		remote = nil
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, s.checkAuth(err)
		}
	}

	summary := BuildMonthlySummary(expenses, year, month)
	if remote != nil {
		summary.BudgetWarning = remote.BudgetWarning
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return nil, domain.ErrStaleRequest
	}
	s.applied = seq
	return summary, nil
}

// checkAuth invalidates the session when the server rejected our
// credential, then passes the error through.
func (s *ReportService) checkAuth(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.session.Invalidate()
	}
	return err
}

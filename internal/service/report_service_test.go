package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmwangi/pesatrack/internal/api"
	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(id int64, amount string, category domain.Category, date string) domain.Expense {
	parsed, _ := time.Parse("2006-01-02", date)
	return domain.Expense{
		ID:          id,
		Description: "test",
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Date:        parsed,
	}
}

func TestBuildMonthlySummary_Scenario(t *testing.T) {
	expenses := []domain.Expense{
		expense(1, "100", domain.CategoryFood, "2024-03-01"),
		expense(2, "50", domain.CategoryFood, "2024-03-15"),
		expense(3, "25", domain.CategoryBills, "2024-03-02"),
	}

	summary := BuildMonthlySummary(expenses, 2024, 3)

	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("175")))
	assert.Equal(t, 3, summary.TransactionCount)

	require.Len(t, summary.CategoryBreakdown, 2)
	assert.True(t, summary.CategoryBreakdown[domain.CategoryFood].Equal(decimal.RequireFromString("150")))
	assert.True(t, summary.CategoryBreakdown[domain.CategoryBills].Equal(decimal.RequireFromString("25")))

	require.Len(t, summary.DailySeries, 31)

	day1 := summary.DailySeries[0]
	assert.Equal(t, "Mar 01", day1.Label())
	assert.True(t, day1.Amount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, 1, day1.Count)

	day15 := summary.DailySeries[14]
	assert.True(t, day15.Amount.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, 1, day15.Count)

	day3 := summary.DailySeries[2]
	assert.True(t, day3.Amount.IsZero())
	assert.Equal(t, 0, day3.Count)
}

func TestBuildMonthlySummary_SeriesLengthMatchesMonth(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tt := range tests {
		summary := BuildMonthlySummary(nil, tt.year, tt.month)
		assert.Len(t, summary.DailySeries, tt.want, "%d-%02d", tt.year, tt.month)
	}
}

func TestBuildMonthlySummary_ConsistencyLaws(t *testing.T) {
	expenses := []domain.Expense{
		expense(1, "10.01", domain.CategoryFood, "2024-02-01"),
		expense(2, "0.10", domain.CategoryFood, "2024-02-29"),
		expense(3, "99.99", domain.CategoryBills, "2024-02-14"),
		expense(4, "0.33", domain.CategoryShopping, "2024-02-14"),
		expense(5, "42.42", domain.CategoryHealthcare, "2024-02-07"),
		// Outside the selected month, must not count
		expense(6, "1000", domain.CategoryFood, "2024-03-01"),
		// Same month of a different year, must not count
		expense(7, "500", domain.CategoryFood, "2023-02-10"),
	}

	summary := BuildMonthlySummary(expenses, 2024, 2)

	assert.Equal(t, 5, summary.TransactionCount)

	daySum := decimal.Zero
	for _, point := range summary.DailySeries {
		daySum = daySum.Add(point.Amount)
	}
	assert.True(t, daySum.Equal(summary.TotalAmount), "daily series must sum to total")

	categorySum := decimal.Zero
	for _, amount := range summary.CategoryBreakdown {
		categorySum = categorySum.Add(amount)
	}
	assert.True(t, categorySum.Equal(summary.TotalAmount), "category breakdown must sum to total")

	// Exact decimal accumulation: 10.01+0.10+99.99+0.33+42.42
	assert.Equal(t, "152.85", summary.TotalAmount.StringFixed(2))
}

func TestBuildMonthlySummary_EmptyMonth(t *testing.T) {
	summary := BuildMonthlySummary(nil, 2024, 6)

	assert.True(t, summary.TotalAmount.IsZero())
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Len(t, summary.DailySeries, 30)

	for _, category := range domain.Categories {
		assert.True(t, summary.CategoryPercent(category).IsZero(),
			"zero total must yield zero percent for %s", category)
	}
}

func TestBuildMonthlySummary_SkipsMalformedDates(t *testing.T) {
	expenses := []domain.Expense{
		expense(1, "100", domain.CategoryFood, "2024-03-01"),
		{ID: 2, Amount: decimal.RequireFromString("50"), Category: domain.CategoryFood}, // zero date
	}

	summary := BuildMonthlySummary(expenses, 2024, 3)

	assert.Equal(t, 1, summary.TransactionCount)
	assert.Equal(t, "100.00", summary.TotalAmount.StringFixed(2))
}

func TestCategoryPercent(t *testing.T) {
	summary := BuildMonthlySummary([]domain.Expense{
		expense(1, "150", domain.CategoryFood, "2024-03-01"),
		expense(2, "25", domain.CategoryBills, "2024-03-02"),
	}, 2024, 3)

	assert.Equal(t, "85.7", summary.CategoryPercent(domain.CategoryFood).String())
	assert.Equal(t, "14.3", summary.CategoryPercent(domain.CategoryBills).String())
	assert.True(t, summary.CategoryPercent(domain.CategoryOther).IsZero())
}

func TestAveragePerDay_DividesByCalendarDays(t *testing.T) {
	summary := BuildMonthlySummary([]domain.Expense{
		expense(1, "310", domain.CategoryFood, "2024-03-01"),
	}, 2024, 3)

	// 310 over 31 calendar days, not days elapsed or days with data
	assert.Equal(t, "10.00", summary.AveragePerDay().StringFixed(2))
}

func newTestSession(t *testing.T, fake *testutil.FakeAPI) (*SessionService, *testutil.MockCredentialStore) {
	t.Helper()
	client := api.NewClient(fake.URL(), zerolog.Nop())
	creds := testutil.NewMockCredentialStore()
	return NewSessionService(client, creds), creds
}

func loggedInSession(t *testing.T, fake *testutil.FakeAPI) *SessionService {
	t.Helper()
	session, _ := newTestSession(t, fake)
	_, err := session.Login(context.Background(), fake.Email, fake.Password)
	require.NoError(t, err)
	return session
}

func TestFetchMonthlyReport(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	fake.SeedExpense("Groceries", 100, "Food", "2024-03-01T08:00:00")
	fake.SeedExpense("Dinner", 50, "Food", "2024-03-15T19:00:00")
	fake.SeedExpense("Electricity", 25, "Bills", "2024-03-02T10:00:00")
	// Same month, previous year: the server returns it, the aggregator
	// must drop it.
	fake.SeedExpense("Old groceries", 999, "Food", "2023-03-01T08:00:00")

	session := loggedInSession(t, fake)
	reports := NewReportService(session)

	summary, err := reports.FetchMonthlyReport(context.Background(), 2024, 3)
	require.NoError(t, err)

	assert.Equal(t, "175.00", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, 3, summary.TransactionCount)
	assert.Len(t, summary.DailySeries, 31)
}

func TestFetchMonthlyReport_RequiresAuth(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	session, _ := newTestSession(t, fake)
	reports := NewReportService(session)

	_, err := reports.FetchMonthlyReport(context.Background(), 2024, 3)
	assert.True(t, errors.Is(err, domain.ErrNotAuthenticated))
}

func TestFetchMonthlyReport_StaleFetchDiscarded(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()
	fake.SeedExpense("Groceries", 100, "Food", "2024-03-01T08:00:00")

	session := loggedInSession(t, fake)
	reports := NewReportService(session)

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var hookMu sync.Mutex
	fake.ExpenseHook = func() {
		hookMu.Lock()
		calls++
		first := calls == 1
		hookMu.Unlock()
		if first {
			close(firstStarted)
			<-release
		}
	}

	type result struct {
		summary *domain.ReportSummary
		err     error
	}
	firstDone := make(chan result, 1)
	go func() {
		summary, err := reports.FetchMonthlyReport(context.Background(), 2024, 3)
		firstDone <- result{summary, err}
	}()

	<-firstStarted

	// A newer fetch is issued and completes while the first is stalled
	summary, err := reports.FetchMonthlyReport(context.Background(), 2024, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Month)

	close(release)
	first := <-firstDone
	assert.True(t, errors.Is(first.err, domain.ErrStaleRequest),
		"the earlier fetch must be discarded, got %v", first.err)
	assert.Nil(t, first.summary)
}

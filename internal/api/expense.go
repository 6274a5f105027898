package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/shopspring/decimal"
)

// expenseDTO mirrors the service's expense representation
type expenseDTO struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	OwnerID     int64           `json:"owner_id"`
}

// dateLayouts covers the timestamp shapes the service has been observed to
// emit: ISO with fractional seconds, without them, full RFC3339 and bare
// dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// parseDate parses a server timestamp. Unparseable input yields the zero
// time so one bad record degrades a report instead of failing it.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func (d expenseDTO) toDomain() domain.Expense {
	return domain.Expense{
		ID:          d.ID,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    domain.Category(d.Category),
		Date:        parseDate(d.Date),
	}
}

// expenseRequest is the create/update payload. Amount is sent as a plain
// JSON number to match the service's float schema.
type expenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

func newExpenseRequest(draft domain.ExpenseDraft) expenseRequest {
	return expenseRequest{
		Description: draft.Description,
		Amount:      draft.Amount.InexactFloat64(),
		Category:    string(draft.Category),
	}
}

// ListExpenses fetches the caller's expenses, optionally filtered by
// category and month.
func (c *Client) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Month != 0 {
		query.Set("month", strconv.Itoa(filter.Month))
	}

	var dtos []expenseDTO
	if err := c.getJSON(ctx, "/expenses", query, &dtos); err != nil {
		return nil, err
	}

	expenses := make([]domain.Expense, 0, len(dtos))
	for _, dto := range dtos {
		expenses = append(expenses, dto.toDomain())
	}
	return expenses, nil
}

// GetExpense fetches a single expense by ID.
func (c *Client) GetExpense(ctx context.Context, id int64) (*domain.Expense, error) {
	var dto expenseDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/expenses/%d", id), nil, &dto); err != nil {
		return nil, err
	}
	expense := dto.toDomain()
	return &expense, nil
}

// CreateExpense records a new expense and returns the server's snapshot.
func (c *Client) CreateExpense(ctx context.Context, draft domain.ExpenseDraft) (*domain.Expense, error) {
	var dto expenseDTO
	if err := c.postJSON(ctx, "/expenses", newExpenseRequest(draft), &dto); err != nil {
		return nil, err
	}
	expense := dto.toDomain()
	return &expense, nil
}

// UpdateExpense replaces the editable fields of an existing expense.
func (c *Client) UpdateExpense(ctx context.Context, id int64, draft domain.ExpenseDraft) (*domain.Expense, error) {
	var dto expenseDTO
	if err := c.putJSON(ctx, fmt.Sprintf("/expenses/%d", id), newExpenseRequest(draft), &dto); err != nil {
		return nil, err
	}
	expense := dto.toDomain()
	return &expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/expenses/%d", id))
}

// RemoteSummary is the server-computed monthly rollup, including the
// optional budget warning the client cannot derive locally.
type RemoteSummary struct {
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	TotalCount        int                        `json:"total_count"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
	BudgetWarning     string                     `json:"budget_warning"`
}

// Summary fetches the server-side expense summary, optionally scoped to a
// month of the current year.
func (c *Client) Summary(ctx context.Context, month int) (*RemoteSummary, error) {
	query := url.Values{}
	if month != 0 {
		query.Set("month", strconv.Itoa(month))
	}

	var summary RemoteSummary
	if err := c.getJSON(ctx, "/expenses/summary", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ExportCSV downloads the caller's full expense history as CSV.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/expenses/export/csv", nil, "", nil)
}

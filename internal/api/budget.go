package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/shopspring/decimal"
)

// budgetDTO mirrors the service's budget representation
type budgetDTO struct {
	ID       int64           `json:"id"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	OwnerID  int64           `json:"owner_id"`
}

func (d budgetDTO) toDomain() domain.Budget {
	return domain.Budget{
		ID:       d.ID,
		Month:    d.Month,
		Year:     d.Year,
		Amount:   d.Amount,
		Category: domain.Category(d.Category),
	}
}

type budgetRequest struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

func newBudgetRequest(draft domain.BudgetDraft) budgetRequest {
	return budgetRequest{
		Month:    draft.Month,
		Year:     draft.Year,
		Amount:   draft.Amount.InexactFloat64(),
		Category: string(draft.Category),
	}
}

// ListBudgets fetches the caller's budgets, optionally filtered by month
// and year.
func (c *Client) ListBudgets(ctx context.Context, month, year int) ([]domain.Budget, error) {
	query := url.Values{}
	if month != 0 {
		query.Set("month", strconv.Itoa(month))
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var dtos []budgetDTO
	if err := c.getJSON(ctx, "/budgets", query, &dtos); err != nil {
		return nil, err
	}

	budgets := make([]domain.Budget, 0, len(dtos))
	for _, dto := range dtos {
		budgets = append(budgets, dto.toDomain())
	}
	return budgets, nil
}

// CreateBudget sets a monthly limit for a category.
func (c *Client) CreateBudget(ctx context.Context, draft domain.BudgetDraft) (*domain.Budget, error) {
	var dto budgetDTO
	if err := c.postJSON(ctx, "/budgets", newBudgetRequest(draft), &dto); err != nil {
		return nil, err
	}
	budget := dto.toDomain()
	return &budget, nil
}

// UpdateBudget replaces an existing budget's fields.
func (c *Client) UpdateBudget(ctx context.Context, id int64, draft domain.BudgetDraft) (*domain.Budget, error) {
	var dto budgetDTO
	if err := c.putJSON(ctx, fmt.Sprintf("/budgets/%d", id), newBudgetRequest(draft), &dto); err != nil {
		return nil, err
	}
	budget := dto.toDomain()
	return &budget, nil
}

// DeleteBudget removes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/budgets/%d", id))
}

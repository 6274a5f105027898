package service

import (
	"context"
	"errors"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// BudgetService wraps budget CRUD with client-side validation.
type BudgetService struct {
	session *SessionService
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(session *SessionService) *BudgetService {
	return &BudgetService{session: session}
}

func (s *BudgetService) reconcileAuth(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.session.Invalidate()
	}
	return err
}

// List fetches budgets, optionally scoped to a month and year.
func (s *BudgetService) List(ctx context.Context, month, year int) ([]domain.Budget, error) {
	if month != 0 && (month < 1 || month > 12) {
		return nil, domain.ErrInvalidMonth
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	budgets, err := client.ListBudgets(ctx, month, year)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	return budgets, nil
}

// Set creates a budget, or updates the existing one when a budget for the
// same (month, year, category) is already present. The server stores
// duplicates happily, so the merge has to happen here.
func (s *BudgetService) Set(ctx context.Context, draft domain.BudgetDraft) (*domain.Budget, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}

	existing, err := client.ListBudgets(ctx, draft.Month, draft.Year)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	for _, budget := range existing {
		if budget.Category == draft.Category {
			updated, err := client.UpdateBudget(ctx, budget.ID, draft)
			if err != nil {
				return nil, s.reconcileAuth(err)
			}
			return updated, nil
		}
	}

	created, err := client.CreateBudget(ctx, draft)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	return created, nil
}

// Delete removes a budget.
func (s *BudgetService) Delete(ctx context.Context, id int64) error {
	client, err := s.session.AuthedClient()
	if err != nil {
		return err
	}
	if err := client.DeleteBudget(ctx, id); err != nil {
		return s.reconcileAuth(err)
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// ExpenseService wraps expense CRUD with client-side validation and forced
// logout when the server rejects the session's credential.
type ExpenseService struct {
	session *SessionService
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(session *SessionService) *ExpenseService {
	return &ExpenseService{session: session}
}

// reconcileAuth invalidates the session on a 401 so a revoked credential is
// discovered on the first authenticated call instead of lingering.
func (s *ExpenseService) reconcileAuth(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.session.Invalidate()
	}
	return err
}

// List fetches expenses, optionally filtered by category and month.
func (s *ExpenseService) List(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		return nil, domain.ErrInvalidMonth
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	expenses, err := client.ListExpenses(ctx, filter)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	return expenses, nil
}

// Create validates and records a new expense.
func (s *ExpenseService) Create(ctx context.Context, draft domain.ExpenseDraft) (*domain.Expense, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	expense, err := client.CreateExpense(ctx, draft)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	return expense, nil
}

// Update validates and replaces an existing expense.
func (s *ExpenseService) Update(ctx context.Context, id int64, draft domain.ExpenseDraft) (*domain.Expense, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	expense, err := client.UpdateExpense(ctx, id, draft)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	return expense, nil
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	client, err := s.session.AuthedClient()
	if err != nil {
		return err
	}
	if err := client.DeleteExpense(ctx, id); err != nil {
		return s.reconcileAuth(err)
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	withDetail := &APIError{StatusCode: 401, Detail: "Incorrect email or password"}
	assert.Equal(t, "Incorrect email or password", UserMessage(withDetail, "Login failed"))

	// Wrapped errors still surface the detail
	wrapped := fmt.Errorf("login: %w", withDetail)
	assert.Equal(t, "Incorrect email or password", UserMessage(wrapped, "Login failed"))

	noDetail := &APIError{StatusCode: 500}
	assert.Equal(t, "Login failed", UserMessage(noDetail, "Login failed"))

	network := &NetworkError{Op: "POST /login", Err: errors.New("connection refused")}
	assert.Equal(t, "Login failed", UserMessage(network, "Login failed"))

	assert.Equal(t, "", UserMessage(nil, "Login failed"))
}

func TestAPIError_UnwrapsToSentinels(t *testing.T) {
	assert.True(t, errors.Is(&APIError{StatusCode: 401}, ErrUnauthorized))
	assert.True(t, errors.Is(&APIError{StatusCode: 404}, ErrNotFound))
	assert.False(t, errors.Is(&APIError{StatusCode: 500}, ErrUnauthorized))
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Op: "GET /expenses", Err: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestExpenseDraftValidate(t *testing.T) {
	draft := ExpenseDraft{Description: "Lunch", Category: CategoryFood}
	assert.NoError(t, draft.Validate())

	draft.Category = "Snacks"
	assert.ErrorIs(t, draft.Validate(), ErrInvalidCategory)
}

func TestCategoryValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.Valid())
	}
	assert.False(t, Category("Misc").Valid())
	assert.False(t, Category("").Valid())
}

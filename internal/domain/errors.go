package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrRegistrationFailed  = errors.New("registration failed")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrDescriptionRequired = errors.New("description is required")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
	ErrInvalidYear         = errors.New("year must be a four-digit year")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidResetKey     = errors.New("reset key must be 6 characters")
	ErrStaleRequest        = errors.New("superseded by a newer request")
)

// Validation constants
const (
	MinPasswordLength = 6
	ResetKeyLength    = 6
)

// APIError describes a non-2xx response from the remote service. Detail
// carries the server's human-readable message when the body had one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Unwrap maps well-known status codes onto sentinel errors so callers can
// use errors.Is without inspecting status codes directly.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}

// NetworkError wraps a transport-level failure: the request never produced
// a response, so there is no status code or server detail to report.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns a message suitable for direct display. Server-provided
// detail wins; transport failures and blank details fall back to a generic
// message so the UI never renders an internal error string.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

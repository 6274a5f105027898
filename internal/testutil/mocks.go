package testutil

import (
	"sync"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// MockCredentialStore is an in-memory implementation of
// domain.CredentialStore
type MockCredentialStore struct {
	mu       sync.Mutex
	token    string
	hasToken bool

	SaveErr  error
	LoadErr  error
	ClearErr error
	// SaveCalls counts SaveToken invocations so tests can assert that a
	// failed login never writes storage.
	SaveCalls int
	// SaveHook runs at the top of SaveToken, before the store's own lock
	// is taken; tests use it to stall a write in flight.
	SaveHook func(token string)
}

// NewMockCredentialStore creates an empty MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// SeedToken installs a token as if it had been persisted by a previous run.
func (m *MockCredentialStore) SeedToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.hasToken = true
}

// SaveToken stores the token
func (m *MockCredentialStore) SaveToken(token string) error {
	if m.SaveHook != nil {
		m.SaveHook(token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	m.hasToken = true
	return nil
}

// LoadToken returns the stored token or domain.ErrNotFound
func (m *MockCredentialStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	if !m.hasToken {
		return "", domain.ErrNotFound
	}
	return m.token, nil
}

// ClearToken removes the stored token
func (m *MockCredentialStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	m.hasToken = false
	return nil
}

// HasToken reports whether a token is currently stored.
func (m *MockCredentialStore) HasToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasToken
}

// StoredToken returns the stored token without the not-found error.
func (m *MockCredentialStore) StoredToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// MockPreferenceStore is an in-memory implementation of
// domain.PreferenceStore
type MockPreferenceStore struct {
	mu       sync.Mutex
	currency domain.Currency
	has      bool

	SaveErr error
	LoadErr error
}

// NewMockPreferenceStore creates an empty MockPreferenceStore
func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{}
}

// SaveCurrency stores the currency
func (m *MockPreferenceStore) SaveCurrency(currency domain.Currency) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.currency = currency
	m.has = true
	return nil
}

// LoadCurrency returns the stored currency or domain.ErrNotFound
func (m *MockPreferenceStore) LoadCurrency() (domain.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.Currency{}, m.LoadErr
	}
	if !m.has {
		return domain.Currency{}, domain.ErrNotFound
	}
	return m.currency, nil
}

package domain

// CredentialStore persists the bearer credential across process restarts.
type CredentialStore interface {
	SaveToken(token string) error
	// LoadToken returns ErrNotFound when no credential is stored.
	LoadToken() (string, error)
	ClearToken() error
}

// PreferenceStore persists the display currency choice.
type PreferenceStore interface {
	SaveCurrency(currency Currency) error
	// LoadCurrency returns ErrNotFound when no preference is stored.
	LoadCurrency() (Currency, error)
}

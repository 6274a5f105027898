// Package store provides durable client-side state. Values live in a small
// SQLite database under the user's data directory so the session and
// display preferences survive restarts.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmwangi/pesatrack/internal/domain"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Fixed storage keys. These match the names the browser client used for
// localStorage so the semantics carry over one to one.
const (
	keyToken    = "token"
	keyCurrency = "currency"
)

const schema = `
CREATE TABLE IF NOT EXISTS client_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store is a key/value store backed by SQLite. It implements
// domain.CredentialStore and domain.PreferenceStore.
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed and opens the state database.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, "state.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	// Serialized writes; the CLI is single-user but two rapid session
	// mutations must not corrupt the file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) put(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO client_state (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM client_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// SaveToken persists the bearer credential.
func (s *Store) SaveToken(token string) error {
	return s.put(keyToken, token)
}

// LoadToken returns the persisted bearer credential, or domain.ErrNotFound.
func (s *Store) LoadToken() (string, error) {
	return s.get(keyToken)
}

// ClearToken removes the persisted credential. Clearing an absent token is
// not an error.
func (s *Store) ClearToken() error {
	return s.remove(keyToken)
}

// SaveCurrency persists the display currency as JSON.
func (s *Store) SaveCurrency(currency domain.Currency) error {
	raw, err := json.Marshal(currency)
	if err != nil {
		return fmt.Errorf("encode currency: %w", err)
	}
	return s.put(keyCurrency, string(raw))
}

// LoadCurrency returns the persisted display currency, or domain.ErrNotFound.
func (s *Store) LoadCurrency() (domain.Currency, error) {
	raw, err := s.get(keyCurrency)
	if err != nil {
		return domain.Currency{}, err
	}
	var currency domain.Currency
	if err := json.Unmarshal([]byte(raw), &currency); err != nil {
		return domain.Currency{}, fmt.Errorf("decode currency: %w", err)
	}
	return currency, nil
}

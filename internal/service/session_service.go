package service

import (
	"context"
	"errors"
	"sync"

	"github.com/jmwangi/pesatrack/internal/api"
	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/rs/zerolog/log"
)

// SessionService owns the authentication state: the current user, the
// bearer credential and its copy in durable storage. All session mutations
// are serialized through a mutex, and each mutation carries an issuance
// number so a slow in-flight operation cannot overwrite the outcome of one
// issued after it (last-issued-wins).
type SessionService struct {
	client *api.Client
	creds  domain.CredentialStore

	mu      sync.Mutex
	issued  uint64 // issuance counter for session mutations
	applied uint64 // issuance number of the state currently in effect
	state   domain.SessionState
	user    *domain.User
	token   string
}

// NewSessionService creates a new SessionService
func NewSessionService(client *api.Client, creds domain.CredentialStore) *SessionService {
	return &SessionService{
		client: client,
		creds:  creds,
		state:  domain.SessionUnauthenticated,
	}
}

// Session returns a snapshot of the current session state.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionService) snapshotLocked() domain.Session {
	return domain.Session{State: s.state, User: s.user, Token: s.token}
}

// Client returns an API client carrying the current session's credential.
// While unauthenticated it returns the bare client, so requests go out
// without an Authorization header.
func (s *SessionService) Client() *api.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return s.client
	}
	return s.client.WithToken(s.token)
}

// AuthedClient returns a credential-carrying client, or
// domain.ErrNotAuthenticated when no session is active.
func (s *SessionService) AuthedClient() (*api.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.SessionAuthenticated || s.token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.client.WithToken(s.token), nil
}

// begin reserves the next issuance number and marks the session as
// authenticating.
func (s *SessionService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.state = domain.SessionAuthenticating
	return s.issued
}

// commit applies a mutation outcome unless a later mutation has already
// been applied. persist, when non-nil, runs under the same lock as the
// issuance check, so durable storage moves in lockstep with the in-memory
// state: a superseded mutation can never land its storage write after a
// newer one. It reports whether the outcome took effect.
func (s *SessionService) commit(seq uint64, state domain.SessionState, user *domain.User, token string, persist func() error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return false, nil
	}
	s.applied = seq
	s.state = state
	s.user = user
	s.token = token
	if persist == nil {
		return true, nil
	}
	return true, persist()
}

// Bootstrap restores a persisted credential at process start. A stored
// token moves the session to authenticating and is verified with a profile
// probe; a rejected token is cleared and the session lands unauthenticated.
// A transport failure during the probe keeps the token optimistically, so
// an offline start does not log the user out.
func (s *SessionService) Bootstrap(ctx context.Context) (domain.Session, error) {
	seq := s.begin()

	token, err := s.creds.LoadToken()
	if errors.Is(err, domain.ErrNotFound) {
		s.commit(seq, domain.SessionUnauthenticated, nil, "", nil)
		return s.Session(), nil
	}
	if err != nil {
		s.commit(seq, domain.SessionUnauthenticated, nil, "", nil)
		return s.Session(), err
	}

	user, err := s.client.WithToken(token).Profile(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// Expired or revoked credential; discard it
			if _, clearErr := s.commit(seq, domain.SessionUnauthenticated, nil, "", s.creds.ClearToken); clearErr != nil {
				log.Error().Err(clearErr).Msg("Failed to clear rejected credential")
			}
			return s.Session(), nil
		}

		var netErr *domain.NetworkError
		if errors.As(err, &netErr) {
			log.Warn().Err(err).Msg("Credential probe unreachable, keeping stored session")
			placeholder := &domain.User{FullName: domain.PlaceholderName}
			s.commit(seq, domain.SessionAuthenticated, placeholder, token, nil)
			return s.Session(), nil
		}

		s.commit(seq, domain.SessionUnauthenticated, nil, "", nil)
		return s.Session(), err
	}

	s.commit(seq, domain.SessionAuthenticated, user, token, nil)
	log.Info().Str("email", user.Email).Msg("Session restored")
	return s.Session(), nil
}

// Login exchanges credentials for a bearer token, persists it and installs
// it on the session. On rejection the session stays unauthenticated and
// nothing is written to storage.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	seq := s.begin()

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.commit(seq, domain.SessionUnauthenticated, nil, "", nil)
		if errors.Is(err, domain.ErrUnauthorized) {
			return s.Session(), errors.Join(domain.ErrInvalidCredentials, err)
		}
		return s.Session(), err
	}

	// Fetch the real identity; fall back to a placeholder if the profile
	// call fails, the token grant already succeeded.
	user, profileErr := s.client.WithToken(token).Profile(ctx)
	if profileErr != nil {
		log.Warn().Err(profileErr).Msg("Profile fetch after login failed")
		user = &domain.User{Email: email, FullName: domain.PlaceholderName}
	}

	// The persisted token is written under the same issuance check as the
	// in-memory state, so a superseded login can neither install its token
	// nor overwrite a newer login's stored credential.
	applied, saveErr := s.commit(seq, domain.SessionAuthenticated, user, token, func() error {
		return s.creds.SaveToken(token)
	})
	if !applied {
		// A later login or logout already took effect; drop this outcome
		// and leave storage alone.
		return s.Session(), domain.ErrStaleRequest
	}
	if saveErr != nil {
		log.Error().Err(saveErr).Msg("Failed to persist credential")
		return s.Session(), saveErr
	}

	log.Info().Str("email", email).Msg("Logged in")
	return s.Session(), nil
}

// Register creates an account. It does not change the session; the user
// logs in separately afterwards.
func (s *SessionService) Register(ctx context.Context, email, password, fullName string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if err := s.client.Register(ctx, email, password, fullName); err != nil {
		return errors.Join(domain.ErrRegistrationFailed, err)
	}
	log.Info().Str("email", email).Msg("Registered")
	return nil
}

// Logout clears durable storage and resets the session. It never makes a
// network call and always succeeds in resetting in-memory state.
func (s *SessionService) Logout() error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	if _, err := s.commit(seq, domain.SessionUnauthenticated, nil, "", s.creds.ClearToken); err != nil {
		log.Error().Err(err).Msg("Failed to clear stored credential")
		return err
	}
	return nil
}

// Invalidate drops a credential the server has started rejecting: storage
// is cleared and the session moves to the invalid state. Called by the
// data services when an authenticated request comes back 401.
func (s *SessionService) Invalidate() {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	if _, err := s.commit(seq, domain.SessionInvalid, nil, "", s.creds.ClearToken); err != nil {
		log.Error().Err(err).Msg("Failed to clear invalidated credential")
	}
	log.Warn().Msg("Session invalidated by server rejection")
}

// UpdateIdentity replaces the in-memory identity snapshot after a profile
// edit. The credential is untouched.
func (s *SessionService) UpdateIdentity(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

package service

import (
	"context"
	"errors"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// ProfileService fetches and edits the authenticated user's profile and
// keeps the session's identity snapshot in step with it.
type ProfileService struct {
	session *SessionService
}

// NewProfileService creates a new ProfileService
func NewProfileService(session *SessionService) *ProfileService {
	return &ProfileService{session: session}
}

func (s *ProfileService) reconcileAuth(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		s.session.Invalidate()
	}
	return err
}

// Get fetches the current profile from the server and refreshes the
// session's identity snapshot.
func (s *ProfileService) Get(ctx context.Context) (*domain.User, error) {
	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	user, err := client.Profile(ctx)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	s.session.UpdateIdentity(user)
	return user, nil
}

// Update edits the profile and refreshes the session's identity snapshot
// with the server's response.
func (s *ProfileService) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	client, err := s.session.AuthedClient()
	if err != nil {
		return nil, err
	}
	user, err := client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, s.reconcileAuth(err)
	}
	s.session.UpdateIdentity(user)
	return user, nil
}

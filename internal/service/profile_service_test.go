package service

import (
	"context"
	"testing"

	"github.com/jmwangi/pesatrack/internal/domain"
	"github.com/jmwangi/pesatrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateRefreshesIdentity(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	session := loggedInSession(t, fake)
	profiles := NewProfileService(session)

	newName := "Renamed User"
	updated, err := profiles.Update(context.Background(), domain.ProfileUpdate{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", updated.FullName)

	// The session snapshot follows the profile edit, the token does not
	snapshot := session.Session()
	assert.Equal(t, "Renamed User", snapshot.User.FullName)
	assert.Equal(t, "tok-1", snapshot.Token)
}

func TestProfileService_Get(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()

	profiles := NewProfileService(loggedInSession(t, fake))

	user, err := profiles.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", user.Email)
	assert.True(t, user.IsActive)
}

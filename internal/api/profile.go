package api

import (
	"context"

	"github.com/jmwangi/pesatrack/internal/domain"
)

// userDTO mirrors the service's user representation
type userDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Email:     d.Email,
		FullName:  d.FullName,
		IsActive:  d.IsActive,
		CreatedAt: parseDate(d.CreatedAt),
	}
}

// Profile fetches the authenticated user's profile. It doubles as the
// credential probe during session bootstrap: a 401 here means the persisted
// token is no longer valid.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var dto userDTO
	if err := c.getJSON(ctx, "/users/profile", nil, &dto); err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}

// UpdateProfile changes the user's name and/or email.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var dto userDTO
	if err := c.putJSON(ctx, "/users/profile", update, &dto); err != nil {
		return nil, err
	}
	user := dto.toDomain()
	return &user, nil
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the user's password after verifying the current
// one server side.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.putJSON(ctx, "/users/change-password", passwordChangeRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}

package domain

import "time"

// User represents the authenticated user's profile as returned by the
// remote service.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaceholderName is used for the display name before the profile has been
// fetched from the server.
const PlaceholderName = "User"

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

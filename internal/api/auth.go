package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// loginResponse is the token grant issued by POST /login
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The endpoint follows the
// OAuth2 password-grant convention: the payload is form-encoded, not JSON,
// and the email is sent as "username".
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/login", nil,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates a new account. It does not log the user in; a separate
// Login call is required afterwards.
func (c *Client) Register(ctx context.Context, email, password, fullName string) error {
	return c.postJSON(ctx, "/register", registerRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, nil)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset asks the server to deliver a reset key out of band.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/password-reset/request", passwordResetRequest{Email: email}, nil)
}

type passwordResetVerify struct {
	Email       string `json:"email"`
	ResetKey    string `json:"reset_key"`
	NewPassword string `json:"new_password"`
}

// VerifyPasswordReset redeems a reset key for a new password. The key is
// case-insensitive on the server; it is normalized to uppercase here.
func (c *Client) VerifyPasswordReset(ctx context.Context, email, resetKey, newPassword string) error {
	return c.postJSON(ctx, "/password-reset/verify", passwordResetVerify{
		Email:       email,
		ResetKey:    strings.ToUpper(resetKey),
		NewPassword: newPassword,
	}, nil)
}

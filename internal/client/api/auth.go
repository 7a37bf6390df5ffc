package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token. It is sent without auth headers.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	e := endpoint{op: "login", method: http.MethodPost, path: "/auth/login", body: creds, public: true, fallback: "Login failed"}
	if err := c.checkInput(e, creds); err != nil {
		return AuthResponse{}, err
	}
	return call[AuthResponse](ctx, c, e)
}

// Signup creates an account and returns its first token.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	e := endpoint{op: "signup", method: http.MethodPost, path: "/auth/signup", body: req, public: true, fallback: "Signup failed"}
	if err := c.checkInput(e, req); err != nil {
		return AuthResponse{}, err
	}
	return call[AuthResponse](ctx, c, e)
}

// CurrentUser returns the profile the current token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (UserProfile, error) {
	return call[UserProfile](ctx, c, endpoint{op: "get user", method: http.MethodGet, path: "/auth/me", fallback: "Failed to get user"})
}

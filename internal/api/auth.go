package api

import (
	"context"
	"errors"
	"net/http"

	"avaliaccess/internal/domain"
)

// RegisterRequest creates an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token
type AuthResponse struct {
	Token string `json:"token"`
}

var errEmptyToken = errors.New("server returned an empty token")

// Register creates an account and returns its token
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errEmptyToken
	}
	return &resp, nil
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errEmptyToken
	}
	return &resp, nil
}

// Me returns the profile of the token's owner
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

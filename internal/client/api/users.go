package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/msivanov/materialhub/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", nil, creds, &resp); err != nil {
		return nil, err
	}
	if resp.Access == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", ErrMalformedResponse)
	}
	if err := resp.User.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register/", nil, reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	var msg models.Message
	return c.do(ctx, http.MethodPost, "/api/auth/logout/", nil, nil, &msg)
}

// Refresh exchanges a refresh token for a fresh access token. The caller is
// responsible for storing the result.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh": refreshToken}
	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, refreshPath, nil, body, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%w: refresh response missing access token", ErrMalformedResponse)
	}
	return resp.Access, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/user/", nil, nil, &u); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/api/auth/profile/", nil, update, &u); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &u, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	var msg models.Message
	return c.do(ctx, http.MethodPost, "/api/auth/change-password/", nil, change, &msg)
}

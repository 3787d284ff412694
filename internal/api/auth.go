package api

import (
	"context"
	"io"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

// Login exchanges credentials for access and refresh tokens. Token
// persistence is the caller's decision (the "remember me" toggle).
func (c *Client) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthTokens, error) {
	var tokens response.AuthTokens
	if err := c.postJSON(ctx, "users/login/", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates a new account. The backend sends a verification email
// before the account can log in.
func (c *Client) Register(ctx context.Context, req *request.RegisterRequest) error {
	return c.postJSON(ctx, "users/register/", req, nil)
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*response.UserProfile, error) {
	var profile response.UserProfile
	if err := c.getJSON(ctx, "users/profile/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile sends the changed profile fields, with an optional avatar
// image, as a multipart PUT.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string, avatarName string, avatar io.Reader) (*response.UserProfile, error) {
	var profile response.UserProfile
	if err := c.sendMultipart(ctx, http.MethodPut, "users/profile/update/", fields, "profile_picture", avatarName, avatar, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ResetPassword requests a password-reset email.
func (c *Client) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	return c.postJSON(ctx, "users/reset-password/", req, nil)
}

// ResetPasswordConfirm completes a reset using the emailed uid and token.
func (c *Client) ResetPasswordConfirm(ctx context.Context, req *request.ResetPasswordConfirmRequest) error {
	return c.postJSON(ctx, "users/reset-password-confirm/", req, nil)
}

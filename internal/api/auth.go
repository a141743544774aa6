package api

import (
	"context"

	"stylekart/internal/model"
)

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.post(ctx, "/api/auth/login", creds, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.post(ctx, "/api/auth/register", reg, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Package client holds the typed API clients for the FieldOS backend.
// Each client is a thin mapping from Go calls to REST endpoints; all wire
// behavior (auth header, 401 policy, retry) lives in the transport.
package client

import (
	"context"
	"fmt"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/transport"
)

// AuthClient covers the identity endpoints.
type AuthClient struct {
	t *transport.Client
}

// NewAuthClient creates an AuthClient on the shared transport.
func NewAuthClient(t *transport.Client) *AuthClient {
	return &AuthClient{t: t}
}

// Login exchanges credentials for a bearer token and the user record.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.t.Post(ctx, "Auth.Login", "/v1/auth/login", &domain.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access token")
	}
	return &resp, nil
}

// Me fetches the authoritative user for the current token.
func (c *AuthClient) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.t.Get(ctx, "Auth.Me", "/v1/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// authResponse is the payload of a successful login or registration.
type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a user and a bearer token. Invalid
// credentials surface as *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Register creates an account and returns the user and a bearer token.
// photoURL must already be resolved by the upload collaborator.
func (c *Client) Register(ctx context.Context, name, email, password, photoURL string) (models.User, string, error) {
	req := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"photo":    photoURL,
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return models.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Me validates the given token and returns the account it belongs to.
// An expired or invalid token surfaces as *AuthError.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(WithToken(ctx, token), http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

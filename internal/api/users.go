package api

import (
	"context"
	"net/http"

	"github.com/pkazmirchuk/shelfmark/internal/models"
)

// ListUsers returns every account, for the admin back-office.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes an account's authorization role.
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) error {
	req := map[string]string{"role": role}
	return c.do(ctx, http.MethodPut, "/admin/users/"+id, req, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, nil, nil)
}

package backend

import (
	"context"
	"net/url"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ListAdmins returns every admin account.
func (c *Client) ListAdmins(ctx context.Context) ([]domain.AdminAccount, error) {
	var admins []domain.AdminAccount
	if err := c.get(ctx, "/list", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateAdmin registers a new admin account. Super admins are sent with an empty
// permission list since their role already grants everything.
func (c *Client) CreateAdmin(ctx context.Context, acc domain.NewAdminAccount) error {
	if acc.Role == domain.RoleSuperAdmin || acc.Permissions == nil {
		acc.Permissions = []string{}
	}
	return c.post(ctx, "/create", acc, nil)
}

// DeleteAdmin removes an admin account.
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	return c.delete(ctx, "/"+url.PathEscape(id))
}

package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ListUsers returns the most recent users.
func (c *Client) ListUsers(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/users", pageQuery(limit, -1), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers looks users up by email or name.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error) {
	q := pageQuery(limit, -1)
	q.Set("q", query)
	var users []domain.User
	if err := c.get(ctx, "/users/search", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// pageQuery builds limit/offset parameters; a negative offset is omitted.
func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset >= 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

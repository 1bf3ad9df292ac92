package backend

import (
	"context"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// GetAssets returns the configured 3D asset links.
func (c *Client) GetAssets(ctx context.Context) (domain.AssetSettings, error) {
	var res domain.AssetSettings
	err := c.get(ctx, "/settings/assets", nil, &res)
	return res, err
}

// UpdateAssets replaces the asset links.
func (c *Client) UpdateAssets(ctx context.Context, links domain.AssetLinks) (domain.AssetSettings, error) {
	var res domain.AssetSettings
	err := c.put(ctx, "/settings/assets", links, &res)
	return res, err
}

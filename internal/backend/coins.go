package backend

import (
	"context"
	"fmt"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// AdjustCoins adds or deducts coins and returns the resulting balance.
func (c *Client) AdjustCoins(ctx context.Context, action domain.CoinAction, adj domain.CoinAdjustment) (domain.CoinAdjustmentResult, error) {
	var res domain.CoinAdjustmentResult
	if !action.Valid() {
		return res, fmt.Errorf("unknown coin action %q", action)
	}
	err := c.post(ctx, "/coins/"+string(action), adj, &res)
	return res, err
}

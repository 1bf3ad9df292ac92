package backend

import (
	"context"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ListTransactions returns the latest coin ledger entries.
func (c *Client) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.get(ctx, "/transactions", pageQuery(limit, -1), &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

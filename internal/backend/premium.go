package backend

import (
	"context"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ListPremiumRequests returns pending upgrade requests.
func (c *Client) ListPremiumRequests(ctx context.Context) ([]domain.PremiumRequest, error) {
	var reqs []domain.PremiumRequest
	if err := c.get(ctx, "/premium/requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ApprovePremium grants the requested plan.
func (c *Client) ApprovePremium(ctx context.Context, userID, plan string) error {
	return c.post(ctx, "/premium/approve", domain.PremiumDecision{UserID: userID, Plan: plan}, nil)
}

// RejectPremium declines a request.
func (c *Client) RejectPremium(ctx context.Context, userID, reason string) error {
	if reason == "" {
		reason = domain.DefaultRejectReason
	}
	return c.post(ctx, "/premium/reject", domain.PremiumDecision{UserID: userID, Reason: reason}, nil)
}

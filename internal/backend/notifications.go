package backend

import (
	"context"
	"net/url"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// Broadcast pushes a notification to every device immediately.
func (c *Client) Broadcast(ctx context.Context, msg domain.Broadcast) (domain.BroadcastResult, error) {
	var res domain.BroadcastResult
	err := c.post(ctx, "/broadcast", msg, &res)
	return res, err
}

// BroadcastHistory lists past broadcasts.
func (c *Client) BroadcastHistory(ctx context.Context, limit int) ([]domain.BroadcastItem, error) {
	var items []domain.BroadcastItem
	if err := c.get(ctx, "/broadcast/history", pageQuery(limit, -1), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ScheduleNotification queues a push for later delivery.
func (c *Client) ScheduleNotification(ctx context.Context, n domain.NotificationSchedule) error {
	return c.post(ctx, "/notifications/schedule", n, nil)
}

// ScheduledNotifications lists queued and recently sent scheduled pushes.
func (c *Client) ScheduledNotifications(ctx context.Context, limit int) ([]domain.ScheduledNotification, error) {
	var items []domain.ScheduledNotification
	if err := c.get(ctx, "/notifications/scheduled", pageQuery(limit, -1), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteScheduledNotification cancels a queued push.
func (c *Client) DeleteScheduledNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/notifications/scheduled/"+url.PathEscape(id))
}

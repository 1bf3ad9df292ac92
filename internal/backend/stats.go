package backend

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// Stats returns the headline dashboard counters.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := c.get(ctx, "/stats", nil, &s)
	return s, err
}

// Activities returns one page of the activity feed.
func (c *Client) Activities(ctx context.Context, limit, offset int) ([]domain.Activity, error) {
	var items []domain.Activity
	if err := c.get(ctx, "/activities", pageQuery(limit, offset), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UsageStats returns AI model usage aggregates for a range such as "today", "7d" or "30d".
func (c *Client) UsageStats(ctx context.Context, timeRange string) (json.RawMessage, error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("time_range", timeRange)
	}
	var raw json.RawMessage
	err := c.get(ctx, "/stats/usage", q, &raw)
	return raw, err
}

// UsageLogs returns one page of usage logs. Older API versions answer with a bare list,
// in which case the total is the length of that list.
func (c *Client) UsageLogs(ctx context.Context, limit, offset int) (domain.UsageLogPage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/stats/usage/logs", pageQuery(limit, offset), &raw); err != nil {
		return domain.UsageLogPage{}, err
	}
	return decodeUsageLogs(raw)
}

// ReadingStats returns horoscope reading aggregates.
func (c *Client) ReadingStats(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.get(ctx, "/readings/stats", nil, &raw)
	return raw, err
}

func decodeUsageLogs(raw json.RawMessage) (domain.UsageLogPage, error) {
	page := domain.UsageLogPage{Data: []json.RawMessage{}}
	if len(raw) == 0 || string(raw) == "null" {
		return page, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		page.Data = list
		page.Pagination.Total = len(list)
		return page, nil
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return domain.UsageLogPage{}, err
	}
	if page.Data == nil {
		page.Data = []json.RawMessage{}
	}
	return page, nil
}

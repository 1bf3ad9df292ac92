package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ActivityPageSize is how many activities the overview loads per page.
const ActivityPageSize = 10

// DashboardHandler serves the overview, the activity feed and the readings page.
type DashboardHandler struct{}

// NewDashboardHandler constructs handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Overview handles GET /.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	timeRange := domain.NormalizeTimeRange(c.Query("time_range"))

	var (
		stats      domain.Stats
		activities []domain.Activity
		usage      json.RawMessage
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		stats, err = api.Stats(ctx)
		return err
	})
	g.Go(func() (err error) {
		activities, err = api.Activities(ctx, ActivityPageSize, 0)
		return err
	})
	g.Go(func() (err error) {
		usage, err = api.UsageStats(ctx, timeRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return page(c, fiber.Map{
		"stats":       stats,
		"activities":  nonNil(activities),
		"has_more":    len(activities) == ActivityPageSize,
		"next_offset": len(activities),
		"usage":       usage,
		"time_range":  timeRange,
		"time_ranges": domain.TimeRanges,
	})
}

// Activities handles GET /activities?offset=: the "load more" page of the feed.
func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	activities, err := api.Activities(c.UserContext(), ActivityPageSize, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"activities":  nonNil(activities),
			"has_more":    len(activities) == ActivityPageSize,
			"next_offset": offset + len(activities),
		},
	})
}

// ReadingPageSize is how many activities the readings page scans for readings.
const ReadingPageSize = 20

// Readings handles GET /readings.
func (h *DashboardHandler) Readings(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}

	var (
		stats      json.RawMessage
		activities []domain.Activity
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		stats, err = api.ReadingStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		activities, err = api.Activities(ctx, ReadingPageSize, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return page(c, fiber.Map{
		"stats":    stats,
		"readings": domain.FilterActivities(activities, domain.ActivityTypeReading),
	})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

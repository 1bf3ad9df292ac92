package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
)

// UsageLogPageSize is the number of usage log rows per page.
const UsageLogPageSize = 20

// SettingsHandler serves 3D asset settings and AI model usage.
type SettingsHandler struct{}

// NewSettingsHandler constructs handler.
func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// Assets handles GET /assets.
func (h *SettingsHandler) Assets(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	settings, err := api.GetAssets(c.UserContext())
	if err != nil {
		return err
	}
	return page(c, fiber.Map{"assets": settings.Assets})
}

// UpdateAssets handles POST /assets.
func (h *SettingsHandler) UpdateAssets(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	var req dto.AssetsRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	settings, err := api.UpdateAssets(c.UserContext(), req.Links())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"success": true,
			"message": "Assets updated successfully",
			"assets":  settings.Assets,
		},
	})
}

// Usage handles GET /usage?time_range=&page=.
func (h *SettingsHandler) Usage(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	timeRange := domain.NormalizeTimeRange(c.Query("time_range"))
	pageNum := c.QueryInt("page", 1)
	if pageNum < 1 {
		pageNum = 1
	}

	var (
		stats json.RawMessage
		logs  domain.UsageLogPage
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		stats, err = api.UsageStats(ctx, timeRange)
		return err
	})
	g.Go(func() (err error) {
		logs, err = api.UsageLogs(ctx, UsageLogPageSize, (pageNum-1)*UsageLogPageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return page(c, fiber.Map{
		"time_range":  timeRange,
		"time_ranges": domain.TimeRanges,
		"stats":       stats,
		"logs":        nonNil(logs.Data),
		"pagination": fiber.Map{
			"page":        pageNum,
			"limit":       UsageLogPageSize,
			"total":       logs.Pagination.Total,
			"total_pages": domain.TotalPages(logs.Pagination.Total, UsageLogPageSize),
		},
	})
}

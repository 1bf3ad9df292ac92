package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/service"
)

// NotificationPageSize bounds the history and scheduled lists.
const NotificationPageSize = 30

// NotificationTemplate prefills the broadcast form.
type NotificationTemplate struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var notificationTemplates = []NotificationTemplate{
	{Title: "🌟 ดวงดีวันนี้!", Body: "วันนี้ดวงดาวเรียงตัวเป็นมงคล ลองดูดวงรายวันของคุณได้เลย ✨"},
	{Title: "💫 อัปเดตใหม่!", Body: "เราเพิ่มฟีเจอร์ใหม่ให้คุณแล้ว! เข้ามาดูได้เลยนะ"},
	{Title: "🎁 โบนัสพิเศษ", Body: "รับ Coin ฟรีวันนี้! เข้ามารับก่อนหมดเวลานะ 🪙"},
}

// NotificationsHandler serves push notifications.
type NotificationsHandler struct {
	confirmations *service.ConfirmationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(confirmations *service.ConfirmationService) *NotificationsHandler {
	return &NotificationsHandler{confirmations: confirmations}
}

// View handles GET /notifications.
func (h *NotificationsHandler) View(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}

	var (
		history   []domain.BroadcastItem
		scheduled []domain.ScheduledNotification
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		history, err = api.BroadcastHistory(ctx, NotificationPageSize)
		return err
	})
	g.Go(func() (err error) {
		scheduled, err = api.ScheduledNotifications(ctx, NotificationPageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return page(c, fiber.Map{
		"history":               nonNil(history),
		"scheduled":             nonNil(scheduled),
		"templates":             notificationTemplates,
		"default_schedule_time": dto.DefaultScheduleTime,
	})
}

// Broadcast handles POST /notifications/broadcast. Nothing is sent until the returned
// confirmation is approved.
func (h *NotificationsHandler) Broadcast(c *fiber.Ctx) error {
	_, _, id, err := current(c)
	if err != nil {
		return err
	}

	var req dto.BroadcastRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	msg, err := req.Validate()
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Send push notification to everyone?\n\nTitle: %s\nBody: %s", msg.Title, msg.Body)
	ticket, err := h.confirmations.Request(c.UserContext(), id, domain.ConfirmBroadcast, prompt, msg)
	if err != nil {
		return err
	}
	return confirmationRequired(c, ticket)
}

// Schedule handles POST /notifications/schedule.
func (h *NotificationsHandler) Schedule(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}

	var req dto.ScheduleRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	schedule, err := req.Validate()
	if err != nil {
		return err
	}
	if err := api.ScheduleNotification(c.UserContext(), schedule); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"success": true, "scheduled_at": schedule.ScheduledAt},
	})
}

// DeleteScheduled handles POST /notifications/scheduled/:id/delete.
func (h *NotificationsHandler) DeleteScheduled(c *fiber.Ctx) error {
	_, _, id, err := current(c)
	if err != nil {
		return err
	}
	target := c.Params("id")
	ticket, err := h.confirmations.Request(c.UserContext(), id, domain.ConfirmDeleteScheduled,
		"Delete this scheduled notification?", domain.TargetID{ID: target})
	if err != nil {
		return err
	}
	return confirmationRequired(c, ticket)
}

func confirmationRequired(c *fiber.Ctx, ticket *domain.Confirmation) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{
			"confirmation": fiber.Map{
				"id":         ticket.ID,
				"kind":       ticket.Kind,
				"message":    ticket.Message,
				"expires_at": ticket.ExpiresAt,
				"decide_url": "/confirmations/" + ticket.ID,
			},
		},
	})
}

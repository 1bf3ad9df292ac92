package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/service"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

// PremiumHandler serves premium upgrade requests.
type PremiumHandler struct {
	confirmations *service.ConfirmationService
}

// NewPremiumHandler constructs handler.
func NewPremiumHandler(confirmations *service.ConfirmationService) *PremiumHandler {
	return &PremiumHandler{confirmations: confirmations}
}

// View handles GET /premium.
func (h *PremiumHandler) View(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	reqs, err := api.ListPremiumRequests(c.UserContext())
	if err != nil {
		return err
	}
	return page(c, fiber.Map{"requests": nonNil(reqs)})
}

// Approve handles POST /premium/:user_id/approve.
func (h *PremiumHandler) Approve(c *fiber.Ctx) error {
	_, _, id, err := current(c)
	if err != nil {
		return err
	}
	var req dto.PremiumDecisionRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		return apperrors.NewValidationError("plan required", nil)
	}

	ticket, err := h.confirmations.Request(c.UserContext(), id, domain.ConfirmApprovePremium,
		"Approve this premium request?", domain.PremiumDecision{UserID: c.Params("user_id"), Plan: plan})
	if err != nil {
		return err
	}
	return confirmationRequired(c, ticket)
}

// Reject handles POST /premium/:user_id/reject.
func (h *PremiumHandler) Reject(c *fiber.Ctx) error {
	_, _, id, err := current(c)
	if err != nil {
		return err
	}
	var req dto.PremiumDecisionRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.DefaultRejectReason
	}

	ticket, err := h.confirmations.Request(c.UserContext(), id, domain.ConfirmRejectPremium,
		"Reject this premium request?", domain.PremiumDecision{UserID: c.Params("user_id"), Reason: reason})
	if err != nil {
		return err
	}
	return confirmationRequired(c, ticket)
}

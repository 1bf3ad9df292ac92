package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/service"
)

// ConfirmationsHandler decides pending actions.
type ConfirmationsHandler struct {
	confirmations *service.ConfirmationService
}

// NewConfirmationsHandler constructs handler.
func NewConfirmationsHandler(confirmations *service.ConfirmationService) *ConfirmationsHandler {
	return &ConfirmationsHandler{confirmations: confirmations}
}

// Decide handles POST /confirmations/:id with approve=true|false.
func (h *ConfirmationsHandler) Decide(c *fiber.Ctx) error {
	_, api, id, err := current(c)
	if err != nil {
		return err
	}
	var req dto.ConfirmationDecisionRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}

	outcome, err := h.confirmations.Decide(c.UserContext(), id, c.Params("id"), req.Approve, api)
	if err != nil {
		return err
	}

	data := fiber.Map{"outcome": outcome}
	if decision, ok := outcome.Result.(domain.PremiumDecision); ok && outcome.Status == domain.ConfirmationConfirmed {
		// The decided request leaves the list even if the API still reports it.
		reqs, err := api.ListPremiumRequests(c.UserContext())
		if err != nil {
			return err
		}
		data["requests"] = nonNil(domain.WithoutPremiumRequest(reqs, decision.UserID))
	}
	return c.JSON(fiber.Map{"data": data})
}

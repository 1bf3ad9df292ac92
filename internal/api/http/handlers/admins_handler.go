package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/service"
)

// AdminsHandler manages admin accounts.
type AdminsHandler struct {
	confirmations *service.ConfirmationService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(confirmations *service.ConfirmationService) *AdminsHandler {
	return &AdminsHandler{confirmations: confirmations}
}

// List handles GET /admins.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	_, api, _, err := current(c)
	if err != nil {
		return err
	}
	admins, err := api.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}
	return page(c, fiber.Map{"admins": nonNil(admins)})
}

// CreateView handles GET /admins/create.
func (h *AdminsHandler) CreateView(c *fiber.Ctx) error {
	return page(c, fiber.Map{
		"roles":       []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin},
		"permissions": domain.PermissionCatalog,
	})
}

// Create handles POST /admins and returns to the list on success.
func (h *AdminsHandler) Create(c *fiber.Ctx) error {
	sess, api, _, err := current(c)
	if err != nil {
		return err
	}
	var req dto.AdminCreateRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	account, err := req.Validate()
	if err != nil {
		return err
	}
	if err := api.CreateAdmin(c.UserContext(), account); err != nil {
		return err
	}
	sess.Navigate("/admins")
	return nil
}

// Delete handles POST /admins/:id/delete.
func (h *AdminsHandler) Delete(c *fiber.Ctx) error {
	_, _, id, err := current(c)
	if err != nil {
		return err
	}
	name := c.FormValue("username")
	if name == "" {
		name = c.Params("id")
	}
	ticket, err := h.confirmations.Request(c.UserContext(), id, domain.ConfirmDeleteAdmin,
		fmt.Sprintf("Are you sure you want to delete admin %q?", name), domain.TargetID{ID: c.Params("id")})
	if err != nil {
		return err
	}
	return confirmationRequired(c, ticket)
}

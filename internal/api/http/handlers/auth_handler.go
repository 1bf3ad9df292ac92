package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/api/dto"
	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/backend"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

const loginRejected = "Login failed. Please check your credentials."

// AuthHandler serves the login view and session actions.
type AuthHandler struct {
	appName  string
	homePath string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(appName, homePath string) *AuthHandler {
	if homePath == "" {
		homePath = "/"
	}
	return &AuthHandler{appName: appName, homePath: homePath}
}

// LoginView handles GET /login.
func (h *AuthHandler) LoginView(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"title":  h.appName,
			"fields": []string{"username", "password"},
		},
	})
}

// Login handles POST /login. Success navigates home; failure reports the server's message
// and leaves any existing session untouched.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session unavailable")
	}

	var req dto.LoginRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	issued, err := sess.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return apperrors.NewDomainError("LOGIN_FAILED", backend.Message(err), http.StatusUnauthorized, nil)
	}
	if !issued {
		return apperrors.NewDomainError("LOGIN_FAILED", loginRejected, http.StatusUnauthorized, nil)
	}

	sess.Navigate(h.homePath)
	return nil
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session unavailable")
	}
	sess.Logout()
	return nil
}

// Session handles GET /session: the identity shown in the sidebar.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	id, _ := auth.IdentityFromContext(c)
	return page(c, fiber.Map{"user": id})
}

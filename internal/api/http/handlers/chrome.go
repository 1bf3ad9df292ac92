package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/session"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// Chrome is the layout shared by every page: who is logged in and where they are.
type Chrome struct {
	Username    string    `json:"username"`
	Initial     string    `json:"initial"`
	Role        string    `json:"role"`
	RoleLabel   string    `json:"role_label"`
	Permissions []string  `json:"permissions"`
	Nav         []NavItem `json:"nav"`
}

var navItems = []NavItem{
	{Label: "Overview", Href: "/"},
	{Label: "Users", Href: "/users"},
	{Label: "Notifications", Href: "/notifications"},
	{Label: "Coin Management", Href: "/coins"},
	{Label: "Premium", Href: "/premium"},
	{Label: "Admins", Href: "/admins"},
	{Label: "3D Assets", Href: "/assets"},
	{Label: "ai-model-use", Href: "/usage"},
	{Label: "Readings", Href: "/readings"},
}

// BuildChrome renders the layout for path. A nil identity renders a guest.
func BuildChrome(path string, id *domain.AdminIdentity) Chrome {
	chrome := Chrome{Username: "Guest", Initial: "A", RoleLabel: "Viewer", Permissions: []string{}}
	if id != nil {
		chrome.Username = id.Username
		chrome.Initial = strings.ToUpper(firstRune(id.Username))
		chrome.Role = string(id.Role)
		chrome.RoleLabel = domain.Humanize(string(id.Role))
		if id.IsSuperAdmin() {
			for _, p := range domain.PermissionCatalog {
				chrome.Permissions = append(chrome.Permissions, string(p.ID))
			}
		} else if id.Permissions != nil {
			chrome.Permissions = id.Permissions
		}
	}

	chrome.Nav = make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = isActive(path, item.Href)
		chrome.Nav[i] = item
	}
	return chrome
}

func isActive(path, href string) bool {
	if path == href {
		return true
	}
	return href != "/" && strings.HasPrefix(path, href+"/")
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return "A"
}

// page wraps view data with the layout.
func page(c *fiber.Ctx, data any) error {
	id, _ := auth.IdentityFromContext(c)
	return c.JSON(fiber.Map{
		"chrome": BuildChrome(c.Path(), id),
		"data":   data,
	})
}

// current returns the session, its API client and the identity of the request.
func current(c *fiber.Ctx) (*session.Session, *backend.Client, *domain.AdminIdentity, error) {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return nil, nil, nil, apperrors.NewUnauthorized("session required")
	}
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		id = sess.User()
	}
	if id == nil {
		return nil, nil, nil, apperrors.NewUnauthorized("session required")
	}
	return sess, sess.API(), id, nil
}

func parseForm(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

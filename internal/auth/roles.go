package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/session"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

const identityKey = "admin_identity"

// RequireSession ensures the request carries a valid identity. A token that passed the
// route guard but is expired or unreadable is dropped and the admin is sent to login.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity(c)
		if err != nil || id == nil {
			return err
		}
		return c.Next()
	}
}

// RequirePermission ensures the identity holds the permission. super_admin holds all.
func RequirePermission(permission domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := identity(c)
		if err != nil || id == nil {
			return err
		}
		if !id.HasPermission(permission) {
			return apperrors.NewForbidden(fmt.Sprintf("permission %s required", permission))
		}
		return c.Next()
	}
}

// IdentityFromContext returns the identity resolved by RequireSession or RequirePermission.
func IdentityFromContext(c *fiber.Ctx) (*domain.AdminIdentity, bool) {
	id, ok := c.Locals(identityKey).(*domain.AdminIdentity)
	return id, ok && id != nil
}

// identity resolves the caller once per request. A nil identity with a nil error means the
// request has already been turned into a navigation to the login view.
func identity(c *fiber.Ctx) (*domain.AdminIdentity, error) {
	if id, ok := IdentityFromContext(c); ok {
		return id, nil
	}
	sess, ok := SessionFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("session required")
	}
	id := sess.User()
	if id == nil {
		evict(sess)
		return nil, nil
	}
	c.Locals(identityKey, id)
	return id, nil
}

func evict(sess *session.Session) {
	sess.Clear()
	sess.Navigate(sess.LoginPath())
}

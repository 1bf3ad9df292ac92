package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/session"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

const (
	sessionKey    = "admin_session"
	navigationKey = "admin_navigation"
)

// HeaderHXRedirect asks htmx-style clients to perform a full page navigation.
const HeaderHXRedirect = "HX-Redirect"

// Binder builds the session for one request.
type Binder interface {
	Bind(ctx context.Context, store session.Store, nav session.Navigator, secure bool) *session.Session
}

// SessionMiddleware binds a cookie-backed session to each request. A navigation requested
// while the request was served (logout, a 401 from the admin API) replaces the response
// with a redirect, and the error that caused it is reported in the body instead.
func SessionMiddleware(binder Binder, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := session.NewCookieStore(c, cookieName)
		nav := session.NewPendingNavigation(c.Path())
		sess := binder.Bind(c.UserContext(), store, nav, c.Secure())

		c.Locals(sessionKey, sess)
		c.Locals(navigationKey, nav)

		err := c.Next()

		target, ok := nav.Target()
		if !ok {
			return err
		}
		return redirect(c, target, err)
	}
}

// SessionFromContext returns the session bound by SessionMiddleware.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	sess, ok := c.Locals(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}

// NavigationFromContext returns the pending navigation of the current request.
func NavigationFromContext(c *fiber.Ctx) (*session.PendingNavigation, bool) {
	nav, ok := c.Locals(navigationKey).(*session.PendingNavigation)
	return nav, ok && nav != nil
}

func redirect(c *fiber.Ctx, target string, cause error) error {
	body := fiber.Map{"redirect": target}
	if cause != nil {
		body["error"] = causeMessage(cause)
	}
	c.Set(fiber.HeaderLocation, target)
	c.Set(HeaderHXRedirect, target)
	return c.Status(fiber.StatusSeeOther).JSON(body)
}

func causeMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Message
	}
	return apperrors.ToDomainError(err).Message
}

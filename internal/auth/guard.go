package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/session"
)

// GuardConfig configures the route guard.
type GuardConfig struct {
	CookieName   string
	LoginPath    string
	HomePath     string
	SkipPrefixes []string
}

// RouteGuard gates navigations on the presence of the session cookie. It does not decode
// the token: an expired token still passes and is caught when the session is read or by a
// 401 from the admin API.
func RouteGuard(cfg GuardConfig) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = session.DefaultCookieName
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/"
	}
	loginPath := normalizePath(cfg.LoginPath)

	return func(c *fiber.Ctx) error {
		path := normalizePath(c.Path())
		if skipped(path, cfg.SkipPrefixes) {
			return c.Next()
		}

		hasToken := c.Cookies(cfg.CookieName) != ""
		onLogin := path == loginPath

		switch {
		case hasToken && onLogin:
			return c.Redirect(cfg.HomePath, fiber.StatusTemporaryRedirect)
		case !hasToken && !onLogin:
			return c.Redirect(cfg.LoginPath, fiber.StatusTemporaryRedirect)
		default:
			return c.Next()
		}
	}
}

func skipped(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = normalizePath(prefix)
		if prefix == "/" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

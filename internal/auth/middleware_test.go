package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/auth/authtest"
	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/session"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

type binder struct {
	client *backend.Client
}

func (b binder) Bind(ctx context.Context, store session.Store, nav session.Navigator, secure bool) *session.Session {
	return session.New(ctx, session.Config{
		Client:  b.client,
		Decoder: auth.NewTokenDecoder(),
		TTL:     7 * 24 * time.Hour,
	}, store, nav, secure)
}

func newSessionApp(t *testing.T, upstream http.HandlerFunc) *fiber.App {
	t.Helper()
	if upstream == nil {
		upstream = func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) }
	}
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Code})
		},
	})
	app.Use(auth.SessionMiddleware(binder{client: backend.New(config.BackendConfig{BaseURL: srv.URL})}, ""))

	app.Get("/whoami", auth.RequireSession(), func(c *fiber.Ctx) error {
		id, ok := auth.IdentityFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(id.Username)
	})
	app.Get("/admins", auth.RequirePermission(domain.PermissionManageAdmins), func(c *fiber.Ctx) error {
		return c.SendString("admins")
	})
	app.Get("/stats", auth.RequireSession(), func(c *fiber.Ctx) error {
		sess, _ := auth.SessionFromContext(c)
		stats, err := sess.API().Stats(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(stats)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		sess, _ := auth.SessionFromContext(c)
		sess.Logout()
		return nil
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	return app
}

func request(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: token})
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRequireSessionAcceptsValidToken(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)

	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))
	resp, err := app.Test(request(http.MethodGet, "/whoami", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, findCookie(resp, "admin_token"))
}

func TestRequireSessionEvictsExpiredToken(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)

	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(-time.Minute))
	resp, err := app.Test(request(http.MethodGet, "/whoami", token))
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, "/login", resp.Header.Get(auth.HeaderHXRedirect))
	cookie := findCookie(resp, "admin_token")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestRequireSessionEvictsUndecodableToken(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)

	resp, err := app.Test(request(http.MethodGet, "/whoami", "abc.def.ghi"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	require.NotNil(t, findCookie(resp, "admin_token"))
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)
	exp := time.Now().Add(time.Hour)

	for _, tc := range []struct {
		name   string
		token  string
		status int
	}{
		{"super admin", authtest.MintToken(t, "root", domain.RoleSuperAdmin, nil, exp), http.StatusOK},
		{"granted", authtest.MintToken(t, "ops", domain.RoleAdmin, []string{"manage_admins"}, exp), http.StatusOK},
		{"not granted", authtest.MintToken(t, "ops", domain.RoleAdmin, []string{"manage_coins"}, exp), http.StatusForbidden},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(request(http.MethodGet, "/admins", tc.token))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUpstreamUnauthorizedBecomesRedirect(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token revoked"}`))
	})

	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))
	resp, err := app.Test(request(http.MethodGet, "/stats", token))
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cookie := findCookie(resp, "admin_token")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	body := decodeBody(t, resp)
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, "Token revoked", body["error"])
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)

	resp, err := app.Test(request(http.MethodPost, "/logout", "tok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	body := decodeBody(t, resp)
	assert.NotContains(t, body, "error")
}

func TestErrorsWithoutNavigationPassThrough(t *testing.T) {
	t.Parallel()
	app := newSessionApp(t, nil)

	resp, err := app.Test(request(http.MethodGet, "/broken", "tok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/astro-admin/internal/api/http"
	"github.com/spec-kit/astro-admin/internal/api/http/handlers"
	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/auth/authtest"
	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/observability"
	"github.com/spec-kit/astro-admin/internal/repository"
	"github.com/spec-kit/astro-admin/internal/service"
)

const cookieName = "admin_token"

// adminAPI is a fake admin REST API that records the bearer tokens it receives.
type adminAPI struct {
	mu      sync.Mutex
	bearers map[string]string
	mux     *http.ServeMux
}

func newAdminAPI() *adminAPI {
	return &adminAPI{bearers: map[string]string{}, mux: http.NewServeMux()}
}

func (a *adminAPI) handle(pattern string, h http.HandlerFunc) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.bearers[r.URL.Path] = r.Header.Get("Authorization")
		a.mu.Unlock()
		h(w, r)
	})
}

func (a *adminAPI) bearer(path string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bearers[path]
}

func writeJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func newTestApp(t *testing.T, api *adminAPI) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	sessionCfg := config.SessionConfig{CookieName: cookieName, TTLHours: 168, LoginPath: "/login", HomePath: "/"}
	client := backend.New(config.BackendConfig{BaseURL: srv.URL}, backend.WithMetrics(metrics))
	confirmations := service.NewConfirmationService(time.Minute, service.ConfirmationDependencies{
		Repo: repository.NewMemoryConfirmationRepository(nil),
	})

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:        handlers.NewHealthHandler("astro-admin", "test", client.BaseURL(), nil, metrics),
		Auth:          handlers.NewAuthHandler("astro-admin", "/"),
		Dashboard:     handlers.NewDashboardHandler(),
		Users:         handlers.NewUsersHandler(),
		Coins:         handlers.NewCoinsHandler(),
		Notifications: handlers.NewNotificationsHandler(confirmations),
		Premium:       handlers.NewPremiumHandler(confirmations),
		Admins:        handlers.NewAdminsHandler(confirmations),
		Settings:      handlers.NewSettingsHandler(),
		Confirmations: handlers.NewConfirmationsHandler(confirmations),
		Sessions:      service.NewAuthService(sessionCfg, service.AuthDependencies{Client: client}),
		CookieName:    cookieName,
		Guard: auth.GuardConfig{
			CookieName:   cookieName,
			LoginPath:    "/login",
			HomePath:     "/",
			SkipPrefixes: []string{"/health"},
		},
	})
	return app
}

func get(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	return req
}

func postForm(path, token string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func TestGuardRedirects(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, newAdminAPI())
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))

	resp, err := app.Test(get("/users", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = app.Test(get("/login", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, err = app.Test(get("/health/live", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(get("/login", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginSetsCookieAndNavigatesHome(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))
	api := newAdminAPI()
	api.handle("/api/admin/login", writeJSON(`{"access_token":"`+token+`","token_type":"bearer"}`))
	app := newTestApp(t, api)

	resp, err := app.Test(postForm("/login", "", url.Values{"username": {"ops"}, "password": {"pw"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, "/", resp.Header.Get(auth.HeaderHXRedirect))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
}

func TestLoginFailureReportsServerMessage(t *testing.T) {
	t.Parallel()
	api := newAdminAPI()
	api.handle("/api/admin/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	})
	app := newTestApp(t, api)

	resp, err := app.Test(postForm("/login", "", url.Values{"username": {"ops"}, "password": {"bad"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	body := decode(t, resp)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "LOGIN_FAILED", errBody["code"])
	assert.Equal(t, "Incorrect username or password", errBody["message"])
}

func TestOverviewSendsBearerAndRendersChrome(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, []string{"view_analytics"}, time.Now().Add(time.Hour))
	api := newAdminAPI()
	api.handle("/api/admin/stats", writeJSON(`{"total_users":12,"total_premium":3}`))
	api.handle("/api/admin/activities", writeJSON(`[]`))
	api.handle("/api/admin/stats/usage", writeJSON(`{"total_requests":7}`))
	app := newTestApp(t, api)

	resp, err := app.Test(get("/?time_range=30d", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	chrome := body["chrome"].(map[string]any)
	assert.Equal(t, "ops", chrome["username"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(12), data["stats"].(map[string]any)["total_users"])
	assert.Equal(t, "30d", data["time_range"])
	assert.Equal(t, false, data["has_more"])

	assert.Equal(t, "Bearer "+token, api.bearer("/api/admin/stats"))
	assert.Equal(t, "Bearer "+token, api.bearer("/api/admin/stats/usage"))
}

func TestUpstreamUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))
	api := newAdminAPI()
	api.handle("/api/admin/users", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token revoked"}`)
	})
	app := newTestApp(t, api)

	resp, err := app.Test(get("/users", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)

	body := decode(t, resp)
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, "Token revoked", body["error"])
}

func TestPermissionDenied(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, []string{"manage_users"}, time.Now().Add(time.Hour))
	app := newTestApp(t, newAdminAPI())

	resp, err := app.Test(postForm("/notifications/broadcast", token, url.Values{"title": {"t"}, "body": {"b"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(get("/admins", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBroadcastRunsOnlyAfterConfirmation(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, []string{"broadcast_messages"}, time.Now().Add(time.Hour))
	var sent atomic.Int32
	api := newAdminAPI()
	api.handle("/api/admin/broadcast", func(w http.ResponseWriter, r *http.Request) {
		sent.Add(1)
		var msg domain.Broadcast
		_ = json.NewDecoder(r.Body).Decode(&msg)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"sent":42,"total_tokens":50}`)
	})
	app := newTestApp(t, api)

	resp, err := app.Test(postForm("/notifications/broadcast", token, url.Values{"title": {"Hello"}, "body": {"World"}}))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	confirmation := decode(t, resp)["data"].(map[string]any)["confirmation"].(map[string]any)
	assert.Equal(t, string(domain.ConfirmBroadcast), confirmation["kind"])
	assert.Contains(t, confirmation["message"], "Title: Hello")
	assert.Zero(t, sent.Load())

	decideURL := confirmation["decide_url"].(string)
	resp, err = app.Test(postForm(decideURL, token, url.Values{"approve": {"true"}}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	outcome := decode(t, resp)["data"].(map[string]any)["outcome"].(map[string]any)
	assert.Equal(t, string(domain.ConfirmationConfirmed), outcome["status"])
	assert.Equal(t, float64(42), outcome["result"].(map[string]any)["sent"])
	assert.Equal(t, int32(1), sent.Load())
	assert.Equal(t, "Bearer "+token, api.bearer("/api/admin/broadcast"))

	resp, err = app.Test(postForm(decideURL, token, url.Values{"approve": {"true"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "tickets are single use")
	assert.Equal(t, int32(1), sent.Load())
}

func TestCoinAdjustReportsNewBalance(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "root", domain.RoleSuperAdmin, nil, time.Now().Add(time.Hour))
	api := newAdminAPI()
	api.handle("/api/admin/coins/deduct", writeJSON(`{"new_balance":70}`))
	app := newTestApp(t, api)

	resp, err := app.Test(postForm("/coins/adjust", token, url.Values{
		"user_id": {"u1"},
		"action":  {"deduct"},
		"amount":  {"30"},
		"reason":  {"chargeback"},
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, "Deducted 30 coins. New balance: 70", data["message"])

	resp, err = app.Test(postForm("/coins/adjust", token, url.Values{"user_id": {"u1"}, "amount": {"0"}}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()
	token := authtest.MintToken(t, "ops", domain.RoleAdmin, nil, time.Now().Add(time.Hour))
	app := newTestApp(t, newAdminAPI())

	resp, err := app.Test(postForm("/logout", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-admin/internal/api/http/handlers"
	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Dashboard     *handlers.DashboardHandler
	Users         *handlers.UsersHandler
	Coins         *handlers.CoinsHandler
	Notifications *handlers.NotificationsHandler
	Premium       *handlers.PremiumHandler
	Admins        *handlers.AdminsHandler
	Settings      *handlers.SettingsHandler
	Confirmations *handlers.ConfirmationsHandler

	Sessions   auth.Binder
	CookieName string
	Guard      auth.GuardConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(auth.RouteGuard(cfg.Guard))
	app.Use(auth.SessionMiddleware(cfg.Sessions, cfg.CookieName))

	app.Get("/login", cfg.Auth.LoginView)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)

	signedIn := auth.RequireSession()
	app.Get("/session", signedIn, cfg.Auth.Session)

	app.Get("/", signedIn, cfg.Dashboard.Overview)
	app.Get("/activities", signedIn, cfg.Dashboard.Activities)
	app.Get("/readings", signedIn, cfg.Dashboard.Readings)

	app.Get("/users", signedIn, cfg.Users.List)
	app.Get("/transactions", signedIn, cfg.Users.Transactions)

	app.Get("/coins", signedIn, cfg.Coins.View)
	app.Post("/coins/adjust", auth.RequirePermission(domain.PermissionManageCoins), cfg.Coins.Adjust)

	broadcaster := auth.RequirePermission(domain.PermissionBroadcastMessages)
	app.Get("/notifications", signedIn, cfg.Notifications.View)
	app.Post("/notifications/broadcast", broadcaster, cfg.Notifications.Broadcast)
	app.Post("/notifications/schedule", broadcaster, cfg.Notifications.Schedule)
	app.Post("/notifications/scheduled/:id/delete", broadcaster, cfg.Notifications.DeleteScheduled)

	approver := auth.RequirePermission(domain.PermissionApprovePremium)
	app.Get("/premium", signedIn, cfg.Premium.View)
	app.Post("/premium/:user_id/approve", approver, cfg.Premium.Approve)
	app.Post("/premium/:user_id/reject", approver, cfg.Premium.Reject)

	adminManager := auth.RequirePermission(domain.PermissionManageAdmins)
	app.Get("/admins", adminManager, cfg.Admins.List)
	app.Get("/admins/create", adminManager, cfg.Admins.CreateView)
	app.Post("/admins", adminManager, cfg.Admins.Create)
	app.Post("/admins/:id/delete", adminManager, cfg.Admins.Delete)

	app.Get("/assets", signedIn, cfg.Settings.Assets)
	app.Post("/assets", signedIn, cfg.Settings.UpdateAssets)
	app.Get("/usage", signedIn, cfg.Settings.Usage)

	app.Post("/confirmations/:id", signedIn, cfg.Confirmations.Decide)
}

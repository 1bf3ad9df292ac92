package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/astro-admin/internal/api/http"
	"github.com/spec-kit/astro-admin/internal/api/http/handlers"
	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/events"
	"github.com/spec-kit/astro-admin/internal/observability"
	"github.com/spec-kit/astro-admin/internal/persistence"
	"github.com/spec-kit/astro-admin/internal/repository"
	"github.com/spec-kit/astro-admin/internal/service"
	"github.com/spec-kit/astro-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	var confirmationRepo repository.ConfirmationRepository
	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	switch {
	case err == nil:
		defer redis.Close()
		confirmationRepo = repository.NewRedisConfirmationRepository(redis.Client)
	case errors.Is(err, persistence.ErrRedisDisabled):
		logger.Info("redis not configured, keeping confirmations in memory")
		confirmationRepo = repository.NewMemoryConfirmationRepository(nil)
	default:
		logger.Warn("redis unavailable, keeping confirmations in memory", zap.Error(err))
		confirmationRepo = repository.NewMemoryConfirmationRepository(nil)
	}

	if sweeper, ok := confirmationRepo.(repository.Sweeper); ok {
		go worker.RunConfirmationSweeper(ctx, sweeper, time.Minute, logger.Named("confirmations"))
	}

	client := backend.New(cfg.Backend,
		backend.WithLogger(logger.Named("backend")),
		backend.WithMetrics(metrics),
		backend.WithLoginPath(cfg.Session.LoginPath),
	)

	authService := service.NewAuthService(cfg.Session, service.AuthDependencies{
		Client:     client,
		Decoder:    auth.NewTokenDecoder(),
		Dispatcher: dispatcher,
		Logger:     logger.Named("session"),
	})
	confirmationService := service.NewConfirmationService(cfg.Confirmation.TTL(), service.ConfirmationDependencies{
		Repo:       confirmationRepo,
		Dispatcher: dispatcher,
		Logger:     logger.Named("confirmations"),
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client.BaseURL(), redis, metrics),
		Auth:          handlers.NewAuthHandler(cfg.App.Name, cfg.Session.HomePath),
		Dashboard:     handlers.NewDashboardHandler(),
		Users:         handlers.NewUsersHandler(),
		Coins:         handlers.NewCoinsHandler(),
		Notifications: handlers.NewNotificationsHandler(confirmationService),
		Premium:       handlers.NewPremiumHandler(confirmationService),
		Admins:        handlers.NewAdminsHandler(confirmationService),
		Settings:      handlers.NewSettingsHandler(),
		Confirmations: handlers.NewConfirmationsHandler(confirmationService),
		Sessions:      authService,
		CookieName:    cfg.Session.CookieName,
		Guard: auth.GuardConfig{
			CookieName:   cfg.Session.CookieName,
			LoginPath:    cfg.Session.LoginPath,
			HomePath:     cfg.Session.HomePath,
			SkipPrefixes: cfg.Guard.SkipPrefixes,
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("admin_api", client.BaseURL()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

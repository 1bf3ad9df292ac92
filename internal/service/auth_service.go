package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/auth"
	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/events"
	"github.com/spec-kit/astro-admin/internal/session"
)

// AuthService coordinates the session lifecycle. It holds no per-admin state; every
// request binds its own session to its own token store.
type AuthService struct {
	client     *backend.Client
	decoder    session.Decoder
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	loginPath  string
	now        func() time.Time
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	Client     *backend.Client
	Decoder    session.Decoder
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.SessionConfig, deps AuthDependencies) *AuthService {
	decoder := deps.Decoder
	if decoder == nil {
		decoder = auth.NewTokenDecoder()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		client:     deps.Client,
		decoder:    decoder,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		ttl:        cfg.TTL(),
		loginPath:  cfg.LoginPath,
		now:        deps.Now,
	}
}

// Bind returns the session of one client. secure marks issued cookies as TLS-only.
func (s *AuthService) Bind(ctx context.Context, store session.Store, nav session.Navigator, secure bool) *session.Session {
	return session.New(ctx, session.Config{
		Client:    s.client,
		Decoder:   s.decoder,
		Events:    s.dispatcher,
		Logger:    s.logger,
		TTL:       s.ttl,
		LoginPath: s.loginPath,
		Now:       s.now,
	}, store, nav, secure)
}

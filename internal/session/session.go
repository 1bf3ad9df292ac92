package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/events"
)

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Decoder extracts the identity carried by a token.
type Decoder interface {
	Decode(token string) (*domain.AdminIdentity, error)
}

// Config holds what every session shares.
type Config struct {
	Client    *backend.Client
	Auth      Authenticator
	Decoder   Decoder
	Events    events.Dispatcher
	Logger    *zap.Logger
	TTL       time.Duration
	LoginPath string
	Now       func() time.Time
}

// Session is the single source of truth for who is logged in on one client and with what
// rights. It is bound to a token Store and a Navigator, and hands the API client a view of
// itself so outbound calls carry the token.
type Session struct {
	ctx    context.Context
	cfg    Config
	store  Store
	nav    Navigator
	secure bool
}

// New binds a session to a store and navigator. secure marks cookies issued by Login.
func New(ctx context.Context, cfg Config, store Store, nav Navigator, secure bool) *Session {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Events == nil {
		cfg.Events = events.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.Auth == nil && cfg.Client != nil {
		cfg.Auth = cfg.Client
	}
	return &Session{ctx: ctx, cfg: cfg, store: store, nav: nav, secure: secure}
}

// API returns the admin API client bound to this session.
func (s *Session) API() *backend.Client {
	return s.cfg.Client.WithSession(s)
}

// Login sends the credentials to the admin API and persists the issued token. It reports
// false without error when the API answered successfully but issued no token. Failures
// carry the server's message and leave the store untouched.
func (s *Session) Login(ctx context.Context, username, password string) (bool, error) {
	token, err := s.cfg.Auth.Login(ctx, username, password)
	if err != nil {
		s.publish(events.EventLoginFailed, username, map[string]any{"error": backend.Message(err)})
		return false, err
	}
	if token == "" {
		s.publish(events.EventLoginFailed, username, map[string]any{"error": "no access token issued"})
		return false, nil
	}
	if err := s.store.Set(token, CookieOptions{MaxAge: s.cfg.TTL, Secure: s.secure}); err != nil {
		return false, err
	}
	s.publish(events.EventLoginSucceeded, username, nil)
	return true, nil
}

// Logout drops the token and sends the admin to the login view.
func (s *Session) Logout() {
	username := ""
	if id := s.decode(); id != nil {
		username = id.Username
	}
	s.store.Delete()
	s.publish(events.EventLogout, username, nil)
	s.nav.Navigate(s.cfg.LoginPath)
}

// Token returns the stored token without validating it.
func (s *Session) Token() (string, bool) {
	return s.store.Get()
}

// User decodes the stored token. A missing or undecodable token yields nil; an expired
// one is deleted and yields nil.
func (s *Session) User() *domain.AdminIdentity {
	id := s.decode()
	if id == nil {
		return nil
	}
	if id.ExpiresAt > 0 && time.Unix(id.ExpiresAt, 0).Before(s.cfg.Now()) {
		s.store.Delete()
		s.publish(events.EventSessionExpired, id.Username, nil)
		return nil
	}
	return id
}

// IsAuthenticated reports whether a valid identity is present.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// HasPermission applies the role rules to the current identity.
func (s *Session) HasPermission(name domain.Permission) bool {
	return s.User().HasPermission(name)
}

// Clear drops the token without navigating. The API client calls it on 401.
func (s *Session) Clear() {
	s.store.Delete()
	s.publish(events.EventSessionCleared, "", nil)
}

// CurrentPath is the view being served.
func (s *Session) CurrentPath() string {
	return s.nav.CurrentPath()
}

// Navigate requests a hard navigation.
func (s *Session) Navigate(path string) {
	s.nav.Navigate(path)
}

// LoginPath is the view unauthenticated admins are sent to.
func (s *Session) LoginPath() string {
	return s.cfg.LoginPath
}

func (s *Session) decode() *domain.AdminIdentity {
	token, ok := s.store.Get()
	if !ok || token == "" {
		return nil
	}
	id, err := s.cfg.Decoder.Decode(token)
	if err != nil {
		s.cfg.Logger.Debug("session token not decodable", zap.Error(err))
		return nil
	}
	return id
}

func (s *Session) publish(kind events.EventType, username string, payload map[string]any) {
	err := s.cfg.Events.Publish(s.ctx, events.Event{
		Type:     kind,
		Username: username,
		Path:     s.nav.CurrentPath(),
		Payload:  payload,
	})
	if err != nil {
		s.cfg.Logger.Warn("session event handler failed", zap.String("event", string(kind)), zap.Error(err))
	}
}

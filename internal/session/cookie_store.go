package session

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultCookieName is the cookie holding the bearer token.
const DefaultCookieName = "admin_token"

// CookieStore keeps the token in a browser cookie. The inbound value is captured when the
// store is built so later reads never touch the request concurrently; writes and deletes
// are visible to subsequent reads within the same request.
type CookieStore struct {
	mu      sync.Mutex
	c       *fiber.Ctx
	name    string
	value   string
	present bool
}

// NewCookieStore binds a store to the current request.
func NewCookieStore(c *fiber.Ctx, name string) *CookieStore {
	if name == "" {
		name = DefaultCookieName
	}
	value := c.Cookies(name)
	return &CookieStore{c: c, name: name, value: value, present: value != ""}
}

func (s *CookieStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.present
}

func (s *CookieStore) Set(token string, opts CookieOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(opts.MaxAge),
		MaxAge:   int(opts.MaxAge / time.Second),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.value = token
	s.present = token != ""
	return nil
}

func (s *CookieStore) Delete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return
	}
	s.c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.value = ""
	s.present = false
}

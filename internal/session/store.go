package session

import (
	"sync"
	"time"
)

// CookieOptions are the persistence attributes of a freshly issued token.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// Store persists the raw session token for one client. Deleting an absent token is a no-op.
type Store interface {
	Get() (string, bool)
	Set(token string, opts CookieOptions) error
	Delete()
}

// MemoryStore keeps the token in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	opts    CookieOptions
	sets    int
	deletes int
}

// NewMemoryStore returns a store holding token; an empty token means no session.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string, opts CookieOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.opts = opts
	s.sets++
	return nil
}

func (s *MemoryStore) Delete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.token = ""
	s.deletes++
}

// Options returns the attributes of the last Set.
func (s *MemoryStore) Options() CookieOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Deletes counts deletions that actually removed a token.
func (s *MemoryStore) Deletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

// Sets counts writes.
func (s *MemoryStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

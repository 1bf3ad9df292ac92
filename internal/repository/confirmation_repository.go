package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/astro-admin/internal/domain"
)

// ErrConfirmationNotFound is returned when a ticket is unknown, expired or already used.
var ErrConfirmationNotFound = errors.New("confirmation not found")

const confirmationKeyPrefix = "astro-admin:confirmation:"

// ConfirmationRepository persists pending confirmations until decided or expired.
type ConfirmationRepository interface {
	Save(ctx context.Context, c *domain.Confirmation, ttl time.Duration) error
	// Take loads and removes a confirmation in one step so it can be decided only once.
	Take(ctx context.Context, id string) (*domain.Confirmation, error)
}

type redisConfirmationRepository struct {
	client redis.UniversalClient
}

// NewRedisConfirmationRepository stores confirmations as JSON values with a TTL.
func NewRedisConfirmationRepository(client redis.UniversalClient) ConfirmationRepository {
	return &redisConfirmationRepository{client: client}
}

func (r *redisConfirmationRepository) Save(ctx context.Context, c *domain.Confirmation, ttl time.Duration) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode confirmation: %w", err)
	}
	return r.client.Set(ctx, confirmationKeyPrefix+c.ID, raw, ttl).Err()
}

func (r *redisConfirmationRepository) Take(ctx context.Context, id string) (*domain.Confirmation, error) {
	raw, err := r.client.GetDel(ctx, confirmationKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrConfirmationNotFound
		}
		return nil, err
	}
	var c domain.Confirmation
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode confirmation: %w", err)
	}
	return &c, nil
}

// Sweeper is implemented by stores that need expired tickets purged periodically.
// Redis expires keys on its own and does not implement it.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

type memoryEntry struct {
	confirmation domain.Confirmation
	expiresAt    time.Time
}

type memoryConfirmationRepository struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryConfirmationRepository keeps confirmations in process. Used when Redis is not
// configured; tickets do not survive a restart.
func NewMemoryConfirmationRepository(now func() time.Time) ConfirmationRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryConfirmationRepository{now: now, entries: make(map[string]memoryEntry)}
}

func (r *memoryConfirmationRepository) Save(_ context.Context, c *domain.Confirmation, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	r.entries[c.ID] = memoryEntry{confirmation: *c, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *memoryConfirmationRepository) Take(_ context.Context, id string) (*domain.Confirmation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrConfirmationNotFound
	}
	delete(r.entries, id)
	if !r.now().Before(entry.expiresAt) {
		return nil, ErrConfirmationNotFound
	}
	c := entry.confirmation
	return &c, nil
}

// Sweep drops expired tickets and reports how many were removed.
func (r *memoryConfirmationRepository) Sweep(context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictExpired()
}

func (r *memoryConfirmationRepository) evictExpired() int {
	now := r.now()
	removed := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

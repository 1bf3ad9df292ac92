package repository_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/repository"
)

func sampleConfirmation() *domain.Confirmation {
	return &domain.Confirmation{
		ID:      uuid.NewString(),
		Owner:   "ops",
		Kind:    domain.ConfirmDeleteAdmin,
		Message: "Delete this admin?",
		Payload: json.RawMessage(`{"id":"7"}`),
	}
}

func TestMemoryConfirmationRepositoryIsSingleUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewMemoryConfirmationRepository(nil)
	c := sampleConfirmation()
	require.NoError(t, repo.Save(ctx, c, time.Minute))

	got, err := repo.Take(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Owner, got.Owner)
	assert.JSONEq(t, `{"id":"7"}`, string(got.Payload))

	_, err = repo.Take(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrConfirmationNotFound)
}

func TestMemoryConfirmationRepositoryExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryConfirmationRepository(func() time.Time { return clock })

	c := sampleConfirmation()
	require.NoError(t, repo.Save(ctx, c, 5*time.Minute))

	clock = clock.Add(5 * time.Minute)
	_, err := repo.Take(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrConfirmationNotFound)
}

func TestMemoryConfirmationRepositoryUnknownID(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryConfirmationRepository(nil)
	_, err := repo.Take(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrConfirmationNotFound)
}

func TestRedisConfirmationRepository(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	repo := repository.NewRedisConfirmationRepository(client)
	c := sampleConfirmation()
	require.NoError(t, repo.Save(ctx, c, time.Minute))

	got, err := repo.Take(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Kind, got.Kind)

	_, err = repo.Take(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrConfirmationNotFound)
}

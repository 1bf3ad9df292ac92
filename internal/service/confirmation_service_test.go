package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/config"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/events"
	"github.com/spec-kit/astro-admin/internal/repository"
	"github.com/spec-kit/astro-admin/internal/service"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

type capturedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (f *fakeBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&req.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, req)
		f.mu.Unlock()
		if r.URL.Path == "/api/admin/broadcast" {
			_, _ = w.Write([]byte(`{"success":true,"sent":12,"total_tokens":12}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}
}

func (f *fakeBackend) calls() []capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capturedRequest(nil), f.requests...)
}

type confirmationFixture struct {
	svc     *service.ConfirmationService
	api     *backend.Client
	backend *fakeBackend
	clock   *time.Time
	events  events.Dispatcher
}

func newConfirmationFixture(t *testing.T) *confirmationFixture {
	t.Helper()
	fb := &fakeBackend{}
	srv := httptest.NewServer(fb.handler(t))
	t.Cleanup(srv.Close)

	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewConfirmationService(5*time.Minute, service.ConfirmationDependencies{
		Repo:       repository.NewMemoryConfirmationRepository(now),
		Dispatcher: dispatcher,
		Now:        now,
	})
	return &confirmationFixture{
		svc:     svc,
		api:     backend.New(config.BackendConfig{BaseURL: srv.URL}),
		backend: fb,
		clock:   &clock,
		events:  dispatcher,
	}
}

var (
	broadcaster = &domain.AdminIdentity{Username: "ops", Role: domain.RoleAdmin, Permissions: []string{"broadcast_messages"}}
	superAdmin  = &domain.AdminIdentity{Username: "root", Role: domain.RoleSuperAdmin}
)

func domainStatus(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestConfirmationBroadcastRunsOnlyAfterApproval(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)
	ctx := context.Background()

	var confirmed int
	f.events.Subscribe(events.EventActionConfirmed, func(context.Context, events.Event) error {
		confirmed++
		return nil
	})

	ticket, err := f.svc.Request(ctx, broadcaster, domain.ConfirmBroadcast, "Send to all users?", domain.Broadcast{Title: "Hi", Body: "There"})
	require.NoError(t, err)
	assert.Equal(t, "ops", ticket.Owner)
	assert.Equal(t, f.clock.Add(5*time.Minute), ticket.ExpiresAt)
	assert.Empty(t, f.backend.calls(), "nothing is sent before confirmation")

	outcome, err := f.svc.Decide(ctx, broadcaster, ticket.ID, true, f.api)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationConfirmed, outcome.Status)
	result, ok := outcome.Result.(domain.BroadcastResult)
	require.True(t, ok)
	assert.Equal(t, 12, result.Sent)

	calls := f.backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/admin/broadcast", calls[0].Path)
	assert.Equal(t, "Hi", calls[0].Body["title"])
	assert.Equal(t, 1, confirmed)

	_, err = f.svc.Decide(ctx, broadcaster, ticket.ID, true, f.api)
	assert.Equal(t, http.StatusNotFound, domainStatus(t, err), "tickets are single use")
	assert.Len(t, f.backend.calls(), 1)
}

func TestConfirmationCancelSendsNothing(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)
	ctx := context.Background()

	ticket, err := f.svc.Request(ctx, superAdmin, domain.ConfirmDeleteAdmin, "Delete admin?", domain.TargetID{ID: "7"})
	require.NoError(t, err)

	outcome, err := f.svc.Decide(ctx, superAdmin, ticket.ID, false, f.api)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationCancelled, outcome.Status)
	assert.Empty(t, f.backend.calls())
}

func TestConfirmationDeleteExecutors(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)
	ctx := context.Background()

	for _, tc := range []struct {
		kind    domain.ConfirmationKind
		payload any
		method  string
		path    string
	}{
		{domain.ConfirmDeleteAdmin, domain.TargetID{ID: "7"}, http.MethodDelete, "/api/admin/7"},
		{domain.ConfirmDeleteScheduled, domain.TargetID{ID: "n1"}, http.MethodDelete, "/api/admin/notifications/scheduled/n1"},
		{domain.ConfirmApprovePremium, domain.PremiumDecision{UserID: "u1", Plan: "monthly"}, http.MethodPost, "/api/admin/premium/approve"},
		{domain.ConfirmRejectPremium, domain.PremiumDecision{UserID: "u2"}, http.MethodPost, "/api/admin/premium/reject"},
	} {
		ticket, err := f.svc.Request(ctx, superAdmin, tc.kind, "sure?", tc.payload)
		require.NoError(t, err)
		_, err = f.svc.Decide(ctx, superAdmin, ticket.ID, true, f.api)
		require.NoError(t, err, tc.kind)

		calls := f.backend.calls()
		last := calls[len(calls)-1]
		assert.Equal(t, tc.method, last.Method, tc.kind)
		assert.Equal(t, tc.path, last.Path, tc.kind)
	}

	calls := f.backend.calls()
	assert.Equal(t, "Admin Rejected", calls[len(calls)-1].Body["reason"])
}

func TestConfirmationOwnedByAnotherAdminIsKept(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)
	ctx := context.Background()

	ticket, err := f.svc.Request(ctx, broadcaster, domain.ConfirmBroadcast, "Send?", domain.Broadcast{Title: "t", Body: "b"})
	require.NoError(t, err)

	_, err = f.svc.Decide(ctx, superAdmin, ticket.ID, true, f.api)
	assert.Equal(t, http.StatusForbidden, domainStatus(t, err))
	assert.Empty(t, f.backend.calls())

	_, err = f.svc.Decide(ctx, broadcaster, ticket.ID, true, f.api)
	require.NoError(t, err)
}

func TestConfirmationExpires(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)
	ctx := context.Background()

	ticket, err := f.svc.Request(ctx, broadcaster, domain.ConfirmBroadcast, "Send?", domain.Broadcast{Title: "t", Body: "b"})
	require.NoError(t, err)

	*f.clock = f.clock.Add(6 * time.Minute)
	_, err = f.svc.Decide(ctx, broadcaster, ticket.ID, true, f.api)
	assert.Equal(t, http.StatusNotFound, domainStatus(t, err))
	assert.Empty(t, f.backend.calls())
}

func TestConfirmationRequiresPermission(t *testing.T) {
	t.Parallel()
	f := newConfirmationFixture(t)

	_, err := f.svc.Request(context.Background(), broadcaster, domain.ConfirmDeleteAdmin, "Delete?", domain.TargetID{ID: "1"})
	assert.Equal(t, http.StatusForbidden, domainStatus(t, err))

	_, err = f.svc.Request(context.Background(), nil, domain.ConfirmBroadcast, "Send?", nil)
	assert.Equal(t, http.StatusUnauthorized, domainStatus(t, err))

	_, err = f.svc.Request(context.Background(), superAdmin, "format_disk", "Really?", nil)
	assert.Equal(t, http.StatusBadRequest, domainStatus(t, err))
}

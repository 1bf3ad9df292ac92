package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/backend"
	"github.com/spec-kit/astro-admin/internal/domain"
	"github.com/spec-kit/astro-admin/internal/events"
	"github.com/spec-kit/astro-admin/internal/repository"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

// Executor performs a confirmed action with the deciding admin's API client.
type Executor func(ctx context.Context, api *backend.Client, payload json.RawMessage) (any, error)

// ConfirmationService holds destructive actions until the admin confirms them.
type ConfirmationService struct {
	repo       repository.ConfirmationRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time
	executors  map[domain.ConfirmationKind]Executor
}

// ConfirmationDependencies encapsulates collaborators of the confirmation service.
type ConfirmationDependencies struct {
	Repo       repository.ConfirmationRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewConfirmationService builds the service with executors for every known kind.
func NewConfirmationService(ttl time.Duration, deps ConfirmationDependencies) *ConfirmationService {
	s := &ConfirmationService{
		repo:       deps.Repo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		ttl:        ttl,
		now:        deps.Now,
		executors:  make(map[domain.ConfirmationKind]Executor),
	}
	if s.dispatcher == nil {
		s.dispatcher = events.Nop{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ttl <= 0 {
		s.ttl = 5 * time.Minute
	}

	s.Register(domain.ConfirmBroadcast, executeBroadcast)
	s.Register(domain.ConfirmDeleteScheduled, executeDeleteScheduled)
	s.Register(domain.ConfirmApprovePremium, executeApprovePremium)
	s.Register(domain.ConfirmRejectPremium, executeRejectPremium)
	s.Register(domain.ConfirmDeleteAdmin, executeDeleteAdmin)
	return s
}

// Register sets the executor for a kind, replacing any previous one.
func (s *ConfirmationService) Register(kind domain.ConfirmationKind, exec Executor) {
	s.executors[kind] = exec
}

// Request stores a pending action for the admin and returns the ticket to confirm it with.
func (s *ConfirmationService) Request(ctx context.Context, owner *domain.AdminIdentity, kind domain.ConfirmationKind, message string, payload any) (*domain.Confirmation, error) {
	if err := authorize(owner, kind); err != nil {
		return nil, err
	}
	if _, ok := s.executors[kind]; !ok {
		return nil, apperrors.NewValidationError("unknown action", map[string]any{"kind": kind})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("encode %s payload: %w", kind, err))
	}

	now := s.now().UTC()
	c := &domain.Confirmation{
		ID:        uuid.NewString(),
		Owner:     owner.Username,
		Kind:      kind,
		Message:   message,
		Payload:   raw,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Save(ctx, c, s.ttl); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("save confirmation: %w", err))
	}

	s.publish(ctx, events.EventActionRequested, c)
	return c, nil
}

// Decide consumes a ticket. Approving runs the action; cancelling drops it. A ticket is
// decided at most once and only by the admin who requested it.
func (s *ConfirmationService) Decide(ctx context.Context, owner *domain.AdminIdentity, id string, approve bool, api *backend.Client) (*domain.ConfirmationOutcome, error) {
	if owner == nil {
		return nil, apperrors.NewUnauthorized("session required")
	}
	c, err := s.repo.Take(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConfirmationNotFound) {
			return nil, apperrors.NewNotFound("confirmation", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(fmt.Errorf("load confirmation: %w", err))
	}

	if c.Owner != owner.Username {
		// Put it back for its owner; the remaining window is kept.
		if remaining := c.ExpiresAt.Sub(s.now()); remaining > 0 {
			if err := s.repo.Save(ctx, c, remaining); err != nil {
				s.logger.Warn("restore confirmation failed", zap.String("id", c.ID), zap.Error(err))
			}
		}
		return nil, apperrors.NewForbidden("confirmation belongs to another admin")
	}
	if c.Expired(s.now()) {
		return nil, apperrors.NewConflict("confirmation expired", map[string]any{"id": id})
	}

	outcome := &domain.ConfirmationOutcome{ID: c.ID, Kind: c.Kind}
	if !approve {
		outcome.Status = domain.ConfirmationCancelled
		s.publish(ctx, events.EventActionCancelled, c)
		return outcome, nil
	}

	if err := authorize(owner, c.Kind); err != nil {
		return nil, err
	}
	exec, ok := s.executors[c.Kind]
	if !ok {
		return nil, apperrors.NewValidationError("unknown action", map[string]any{"kind": c.Kind})
	}
	result, err := exec(ctx, api, c.Payload)
	if err != nil {
		return nil, err
	}

	outcome.Status = domain.ConfirmationConfirmed
	outcome.Result = result
	s.publish(ctx, events.EventActionConfirmed, c)
	return outcome, nil
}

func (s *ConfirmationService) publish(ctx context.Context, kind events.EventType, c *domain.Confirmation) {
	payload := map[string]any{"confirmation_id": c.ID, "kind": string(c.Kind)}
	if err := s.dispatcher.Publish(ctx, events.Event{Type: kind, Username: c.Owner, Payload: payload}); err != nil {
		s.logger.Warn("confirmation event handler failed", zap.String("event", string(kind)), zap.Error(err))
	}
}

func authorize(owner *domain.AdminIdentity, kind domain.ConfirmationKind) error {
	if owner == nil {
		return apperrors.NewUnauthorized("session required")
	}
	perm, ok := kind.Permission()
	if !ok {
		return apperrors.NewValidationError("unknown action", map[string]any{"kind": kind})
	}
	if !owner.HasPermission(perm) {
		return apperrors.NewForbidden(fmt.Sprintf("permission %s required", perm))
	}
	return nil
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, apperrors.NewValidationError("malformed confirmation payload", nil)
	}
	return v, nil
}

func executeBroadcast(ctx context.Context, api *backend.Client, raw json.RawMessage) (any, error) {
	msg, err := decodePayload[domain.Broadcast](raw)
	if err != nil {
		return nil, err
	}
	return api.Broadcast(ctx, msg)
}

func executeDeleteScheduled(ctx context.Context, api *backend.Client, raw json.RawMessage) (any, error) {
	target, err := decodePayload[domain.TargetID](raw)
	if err != nil {
		return nil, err
	}
	return target, api.DeleteScheduledNotification(ctx, target.ID)
}

func executeApprovePremium(ctx context.Context, api *backend.Client, raw json.RawMessage) (any, error) {
	d, err := decodePayload[domain.PremiumDecision](raw)
	if err != nil {
		return nil, err
	}
	return d, api.ApprovePremium(ctx, d.UserID, d.Plan)
}

func executeRejectPremium(ctx context.Context, api *backend.Client, raw json.RawMessage) (any, error) {
	d, err := decodePayload[domain.PremiumDecision](raw)
	if err != nil {
		return nil, err
	}
	return d, api.RejectPremium(ctx, d.UserID, d.Reason)
}

func executeDeleteAdmin(ctx context.Context, api *backend.Client, raw json.RawMessage) (any, error) {
	target, err := decodePayload[domain.TargetID](raw)
	if err != nil {
		return nil, err
	}
	return target, api.DeleteAdmin(ctx, target.ID)
}

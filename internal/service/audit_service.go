package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-admin/internal/events"
)

// AuditService writes an audit trail of session and action events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleInfo)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleWarn)
	a.dispatcher.Subscribe(events.EventLogout, a.handleInfo)
	a.dispatcher.Subscribe(events.EventSessionExpired, a.handleInfo)
	a.dispatcher.Subscribe(events.EventSessionCleared, a.handleWarn)
	a.dispatcher.Subscribe(events.EventActionRequested, a.handleInfo)
	a.dispatcher.Subscribe(events.EventActionConfirmed, a.handleInfo)
	a.dispatcher.Subscribe(events.EventActionCancelled, a.handleInfo)
}

func (a *AuditService) handleInfo(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), fields(event)...)
	return nil
}

func (a *AuditService) handleWarn(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), fields(event)...)
	return nil
}

func fields(event events.Event) []zap.Field {
	out := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Time("at", event.Timestamp),
	}
	if event.Username != "" {
		out = append(out, zap.String("username", event.Username))
	}
	if event.Path != "" {
		out = append(out, zap.String("path", event.Path))
	}
	if len(event.Payload) > 0 {
		out = append(out, zap.Any("payload", event.Payload))
	}
	return out
}

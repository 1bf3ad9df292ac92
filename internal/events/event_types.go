package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "session_login"
	EventLoginFailed     EventType = "session_login_failed"
	EventLogout          EventType = "session_logout"
	EventSessionExpired  EventType = "session_expired"
	EventSessionCleared  EventType = "session_cleared"
	EventActionRequested EventType = "action_requested"
	EventActionConfirmed EventType = "action_confirmed"
	EventActionCancelled EventType = "action_cancelled"
)

// Event represents something that happened to an admin session or on its behalf.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Username  string         `json:"username,omitempty"`
	Path      string         `json:"path,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

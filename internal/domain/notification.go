package domain

import "time"

// BroadcastItem is a push notification already sent to every device.
type BroadcastItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// ScheduledNotification is a push waiting for its send time.
type ScheduledNotification struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Type        string  `json:"type"`
	ScheduledAt string  `json:"scheduled_at"`
	Status      string  `json:"status"`
	SentAt      *string `json:"sent_at,omitempty"`
}

// Broadcast is the payload for an immediate push to all users.
type Broadcast struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// BroadcastResult is the delivery summary reported by the admin API.
type BroadcastResult struct {
	Success     bool     `json:"success"`
	Sent        int      `json:"sent"`
	TotalTokens int      `json:"total_tokens"`
	Errors      []string `json:"errors,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// NotificationSchedule is the payload for a deferred push.
type NotificationSchedule struct {
	Title            string            `json:"title"`
	Body             string            `json:"body"`
	ScheduledAt      time.Time         `json:"scheduled_at"`
	NotificationType string            `json:"notification_type"`
	Data             map[string]string `json:"data,omitempty"`
}

// ScheduleZone is the fixed offset (+07:00) schedule dates and times are entered in.
var ScheduleZone = time.FixedZone("ICT", 7*60*60)

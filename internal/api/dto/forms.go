package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/astro-admin/internal/domain"
	apperrors "github.com/spec-kit/astro-admin/pkg/util/errorutil"
)

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate checks required fields.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	return nil
}

// CoinAdjustRequest is the manual balance adjustment form.
type CoinAdjustRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Action string `json:"action" form:"action"`
	Amount int64  `json:"amount" form:"amount"`
	Reason string `json:"reason" form:"reason"`
}

// Validate checks the form and returns the adjustment to send.
func (r CoinAdjustRequest) Validate() (domain.CoinAction, domain.CoinAdjustment, error) {
	action := domain.CoinAction(strings.ToLower(strings.TrimSpace(r.Action)))
	if action == "" {
		action = domain.CoinActionAdd
	}
	details := map[string]any{}
	if !action.Valid() {
		details["action"] = "must be add or deduct"
	}
	if strings.TrimSpace(r.UserID) == "" {
		details["user_id"] = "select a user"
	}
	if r.Amount <= 0 {
		details["amount"] = "must be a positive number"
	}
	if strings.TrimSpace(r.Reason) == "" {
		details["reason"] = "required"
	}
	if len(details) > 0 {
		return "", domain.CoinAdjustment{}, apperrors.NewValidationError("invalid coin adjustment", details)
	}
	return action, domain.CoinAdjustment{
		UserID: strings.TrimSpace(r.UserID),
		Amount: r.Amount,
		Reason: strings.TrimSpace(r.Reason),
	}, nil
}

// BroadcastRequest is the immediate push form.
type BroadcastRequest struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
}

// Validate checks the form and returns the broadcast to send.
func (r BroadcastRequest) Validate() (domain.Broadcast, error) {
	title, body := strings.TrimSpace(r.Title), strings.TrimSpace(r.Body)
	if title == "" || body == "" {
		return domain.Broadcast{}, apperrors.NewValidationError("title and body required", nil)
	}
	return domain.Broadcast{
		Title: title,
		Body:  body,
		Data:  map[string]string{"type": "broadcast", "screen": "notifications"},
	}, nil
}

// DefaultScheduleTime is used when the schedule form leaves the time empty.
const DefaultScheduleTime = "07:00"

// ScheduleRequest is the deferred push form. Date and time are local to domain.ScheduleZone.
type ScheduleRequest struct {
	Title string `json:"title" form:"title"`
	Body  string `json:"body" form:"body"`
	Date  string `json:"date" form:"date"`
	Time  string `json:"time" form:"time"`
}

// Validate checks the form and returns the schedule to send, with the send time in UTC.
func (r ScheduleRequest) Validate() (domain.NotificationSchedule, error) {
	title, body := strings.TrimSpace(r.Title), strings.TrimSpace(r.Body)
	date := strings.TrimSpace(r.Date)
	if title == "" || body == "" || date == "" {
		return domain.NotificationSchedule{}, apperrors.NewValidationError("title, body and date required", nil)
	}
	clock := strings.TrimSpace(r.Time)
	if clock == "" {
		clock = DefaultScheduleTime
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, clock), domain.ScheduleZone)
	if err != nil {
		return domain.NotificationSchedule{}, apperrors.NewValidationError("invalid date or time", map[string]any{
			"date": date,
			"time": clock,
		})
	}
	return domain.NotificationSchedule{
		Title:            title,
		Body:             body,
		ScheduledAt:      at.UTC(),
		NotificationType: "scheduled",
		Data:             map[string]string{"type": "scheduled"},
	}, nil
}

// PremiumDecisionRequest carries the optional plan or reason of a premium decision.
type PremiumDecisionRequest struct {
	Plan   string `json:"plan" form:"plan"`
	Reason string `json:"reason" form:"reason"`
}

// AdminCreateRequest is the new admin form.
type AdminCreateRequest struct {
	Username    string   `json:"username" form:"username"`
	Password    string   `json:"password" form:"password"`
	FullName    string   `json:"full_name" form:"full_name"`
	Role        string   `json:"role" form:"role"`
	Permissions []string `json:"permissions" form:"permissions"`
}

// Validate checks the form and returns the account to create.
func (r AdminCreateRequest) Validate() (domain.NewAdminAccount, error) {
	role := domain.Role(strings.TrimSpace(r.Role))
	if role == "" {
		role = domain.RoleAdmin
	}
	details := map[string]any{}
	if strings.TrimSpace(r.Username) == "" {
		details["username"] = "required"
	}
	if r.Password == "" {
		details["password"] = "required"
	}
	if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
		details["role"] = "must be admin or super_admin"
	}
	known := make(map[domain.Permission]bool, len(domain.PermissionCatalog))
	for _, p := range domain.PermissionCatalog {
		known[p.ID] = true
	}
	for _, p := range r.Permissions {
		if !known[domain.Permission(p)] {
			details["permissions"] = fmt.Sprintf("unknown permission %q", p)
			break
		}
	}
	if len(details) > 0 {
		return domain.NewAdminAccount{}, apperrors.NewValidationError("invalid admin account", details)
	}
	return domain.NewAdminAccount{
		Username:    strings.TrimSpace(r.Username),
		Password:    r.Password,
		FullName:    strings.TrimSpace(r.FullName),
		Role:        role,
		Permissions: r.Permissions,
	}, nil
}

// AssetsRequest is the 3D asset links form.
type AssetsRequest struct {
	Finance     string `json:"finance" form:"finance"`
	Love        string `json:"love" form:"love"`
	Goals       string `json:"goals" form:"goals"`
	MicroTiming string `json:"micro_timing" form:"micro_timing"`
	Wallpaper   string `json:"wallpaper" form:"wallpaper"`
}

// Links returns the trimmed asset links.
func (r AssetsRequest) Links() domain.AssetLinks {
	return domain.AssetLinks{
		Finance:     strings.TrimSpace(r.Finance),
		Love:        strings.TrimSpace(r.Love),
		Goals:       strings.TrimSpace(r.Goals),
		MicroTiming: strings.TrimSpace(r.MicroTiming),
		Wallpaper:   strings.TrimSpace(r.Wallpaper),
	}
}

// ConfirmationDecisionRequest approves or cancels a pending action.
type ConfirmationDecisionRequest struct {
	Approve bool `json:"approve" form:"approve"`
}

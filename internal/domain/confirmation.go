package domain

import (
	"encoding/json"
	"time"
)

// ConfirmationKind names a destructive or broadcast action that needs a second step.
type ConfirmationKind string

const (
	ConfirmBroadcast       ConfirmationKind = "broadcast"
	ConfirmDeleteScheduled ConfirmationKind = "delete_scheduled"
	ConfirmApprovePremium  ConfirmationKind = "approve_premium"
	ConfirmRejectPremium   ConfirmationKind = "reject_premium"
	ConfirmDeleteAdmin     ConfirmationKind = "delete_admin"
)

var confirmationPermissions = map[ConfirmationKind]Permission{
	ConfirmBroadcast:       PermissionBroadcastMessages,
	ConfirmDeleteScheduled: PermissionBroadcastMessages,
	ConfirmApprovePremium:  PermissionApprovePremium,
	ConfirmRejectPremium:   PermissionApprovePremium,
	ConfirmDeleteAdmin:     PermissionManageAdmins,
}

// Permission returns the permission needed to request or confirm the action.
func (k ConfirmationKind) Permission() (Permission, bool) {
	p, ok := confirmationPermissions[k]
	return p, ok
}

// Confirmation is a pending action awaiting the admin's decision. It is single use.
type Confirmation struct {
	ID        string           `json:"id"`
	Owner     string           `json:"owner"`
	Kind      ConfirmationKind `json:"kind"`
	Message   string           `json:"message"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Expired reports whether the decision window has closed.
func (c *Confirmation) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ConfirmationStatus is the outcome of a decision.
type ConfirmationStatus string

const (
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationCancelled ConfirmationStatus = "cancelled"
)

// ConfirmationOutcome reports what happened to a decided confirmation.
type ConfirmationOutcome struct {
	ID     string             `json:"id"`
	Kind   ConfirmationKind   `json:"kind"`
	Status ConfirmationStatus `json:"status"`
	Result any                `json:"result,omitempty"`
}

// TargetID identifies the record a delete confirmation acts on.
type TargetID struct {
	ID string `json:"id"`
}

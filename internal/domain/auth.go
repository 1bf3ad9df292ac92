package domain

import "slices"

// Role differentiates permission-gated admins from unrestricted super admins.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Permission is a named capability gating one admin action.
type Permission string

const (
	PermissionManageUsers       Permission = "manage_users"
	PermissionManageCoins       Permission = "manage_coins"
	PermissionApprovePremium    Permission = "approve_premium"
	PermissionBroadcastMessages Permission = "broadcast_messages"
	PermissionViewAnalytics     Permission = "view_analytics"
	PermissionManageAdmins      Permission = "manage_admins"
)

// PermissionInfo describes a permission for the admin creation form.
type PermissionInfo struct {
	ID          Permission `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"desc"`
}

// PermissionCatalog lists every permission an admin account can be granted.
var PermissionCatalog = []PermissionInfo{
	{ID: PermissionManageUsers, Label: "Manage Users", Description: "View, Ban, Edit Users"},
	{ID: PermissionManageCoins, Label: "Manage Coins", Description: "Add/Deduct Coins"},
	{ID: PermissionApprovePremium, Label: "Approve Premium", Description: "Approve/Reject Premium Requests"},
	{ID: PermissionBroadcastMessages, Label: "Broadcast", Description: "Send Push Notifications"},
	{ID: PermissionViewAnalytics, Label: "View Analytics", Description: "View Dashboard & Stats"},
	{ID: PermissionManageAdmins, Label: "Manage Admins", Description: "Create/Delete Admin Users"},
}

// AdminIdentity is the logged-in admin as decoded from the session token.
// It is derived on every read and never stored.
type AdminIdentity struct {
	Username    string   `json:"username"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
	ExpiresAt   int64    `json:"exp,omitempty"`
}

// IsSuperAdmin reports whether the identity bypasses permission checks.
func (a *AdminIdentity) IsSuperAdmin() bool {
	return a != nil && a.Role == RoleSuperAdmin
}

// HasPermission applies the role rule: super admins hold every permission, admins only
// those listed in their token.
func (a *AdminIdentity) HasPermission(name Permission) bool {
	if a == nil {
		return false
	}
	if a.Role == RoleSuperAdmin {
		return true
	}
	return slices.Contains(a.Permissions, string(name))
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/astro-admin/internal/domain"
)

func TestAdminIdentityHasPermission(t *testing.T) {
	t.Parallel()

	superAdmin := &domain.AdminIdentity{Username: "root", Role: domain.RoleSuperAdmin}
	admin := &domain.AdminIdentity{Username: "ops", Role: domain.RoleAdmin, Permissions: []string{"manage_users"}}
	var nobody *domain.AdminIdentity

	assert.True(t, superAdmin.HasPermission(domain.PermissionManageCoins), "super admin with empty list")
	assert.True(t, admin.HasPermission(domain.PermissionManageUsers))
	assert.False(t, admin.HasPermission(domain.PermissionManageCoins))
	assert.False(t, nobody.HasPermission(domain.PermissionManageUsers))
	assert.True(t, superAdmin.IsSuperAdmin())
	assert.False(t, admin.IsSuperAdmin())
}

func TestPermissionCatalogCoversEveryPermission(t *testing.T) {
	t.Parallel()

	ids := make([]domain.Permission, 0, len(domain.PermissionCatalog))
	for _, p := range domain.PermissionCatalog {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []domain.Permission{
		domain.PermissionManageUsers,
		domain.PermissionManageCoins,
		domain.PermissionApprovePremium,
		domain.PermissionBroadcastMessages,
		domain.PermissionViewAnalytics,
		domain.PermissionManageAdmins,
	}, ids)
}

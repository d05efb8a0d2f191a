package auth

import (
	"testing"
	"time"

	"satta-board/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRankOrdering(t *testing.T) {
	assert.Greater(t, Rank(RoleSuperAdmin), Rank(RoleAdmin))
	assert.Greater(t, Rank(RoleAdmin), Rank(RoleGameManager))
	assert.Equal(t, Rank(RoleGameManager), Rank(RoleContentManager))
	assert.Equal(t, Rank(RoleGameManager), Rank(RoleResultOperator))
	assert.Greater(t, Rank(RoleGameManager), Rank(RoleViewer))
	assert.Greater(t, Rank(RoleViewer), Rank(RoleUser))
	assert.Equal(t, 0, Rank("made_up_role"))
}

func TestHasRoleOrHigher(t *testing.T) {
	assert.True(t, HasRoleOrHigher(RoleSuperAdmin, RoleAdmin))
	assert.True(t, HasRoleOrHigher(RoleAdmin, RoleAdmin))
	assert.False(t, HasRoleOrHigher(RoleAdmin, RoleSuperAdmin))
	// Peer manager roles satisfy each other's rank
	assert.True(t, HasRoleOrHigher(RoleContentManager, RoleResultOperator))

	// Unknown roles fail every comparison, even against other unknowns
	assert.False(t, HasRoleOrHigher("intruder", RoleUser))
	assert.False(t, HasRoleOrHigher("intruder", "intruder"))
}

func TestAuthorize(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	profile := &models.Profile{UserID: "u1", Role: RoleResultOperator, IsActive: true}
	grants := []models.UserPermission{
		{UserID: "u1", Permission: PermManageResults},
		{UserID: "u1", Permission: PermManageGames, ExpiresAt: &future},
		{UserID: "u1", Permission: PermManageContent, ExpiresAt: &past},
	}

	assert.True(t, Authorize(profile, grants, PermManageResults, now))
	assert.True(t, Authorize(profile, grants, PermManageGames, now))
	assert.False(t, Authorize(profile, grants, PermManageContent, now), "expired grant must deny")
	assert.False(t, Authorize(profile, grants, PermManageUsers, now), "absent grant must deny")
}

func TestAuthorizeFailsClosed(t *testing.T) {
	now := time.Now()
	grants := []models.UserPermission{{UserID: "u1", Permission: PermManageResults}}

	assert.False(t, Authorize(nil, grants, PermManageResults, now))

	inactive := &models.Profile{UserID: "u1", Role: RoleSuperAdmin, IsActive: false}
	assert.False(t, Authorize(inactive, grants, PermManageResults, now))

	active := &models.Profile{UserID: "u1", Role: RoleSuperAdmin, IsActive: true}
	assert.False(t, Authorize(active, nil, PermManageResults, now), "no grants means no permissions, whatever the role")
}

func TestActivePermissions(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	grants := []models.UserPermission{
		{Permission: PermManageResults},
		{Permission: PermManageGames, ExpiresAt: &past},
	}

	perms := ActivePermissions(grants, now)
	assert.True(t, perms[PermManageResults])
	assert.False(t, perms[PermManageGames])
	assert.Len(t, perms, 1)
}

func TestDefaultRolePermissions(t *testing.T) {
	assert.Len(t, DefaultRolePermissions[RoleSuperAdmin], 6)
	assert.Contains(t, DefaultRolePermissions[RoleGameManager], PermManageGames)
	assert.Contains(t, DefaultRolePermissions[RoleGameManager], PermManageResults)
	assert.Equal(t, []string{PermManageContent}, DefaultRolePermissions[RoleContentManager])
	assert.Empty(t, DefaultRolePermissions[RoleUser])
}

// Package auth holds the pure authorization core: the role hierarchy, the
// permission catalogue and the Authorize decision function. Nothing in this
// package touches the network or the database, so every rule is unit-testable
// in isolation.
package auth

import (
	"time"

	"satta-board/internal/models"
)

// Role names, ordered by privilege. The three manager roles are peers.
const (
	RoleSuperAdmin     = "super_admin"
	RoleAdmin          = "admin"
	RoleGameManager    = "game_manager"
	RoleContentManager = "content_manager"
	RoleResultOperator = "result_operator"
	RoleViewer         = "viewer"
	RoleUser           = "user"
)

// Permission names. Grants in user_permissions use exactly these strings.
const (
	PermManageUsers    = "manage_users"
	PermManageGames    = "manage_games"
	PermManageResults  = "manage_results"
	PermManageContent  = "manage_content"
	PermViewAnalytics  = "view_analytics"
	PermManageSettings = "manage_settings"
)

// roleRanks is the total order backing "at least as privileged as" checks.
// An unrecognized role maps to 0 and fails every comparison.
var roleRanks = map[string]int{
	RoleSuperAdmin:     100,
	RoleAdmin:          80,
	RoleGameManager:    60,
	RoleContentManager: 60,
	RoleResultOperator: 60,
	RoleViewer:         40,
	RoleUser:           20,
}

// Rank returns the privilege rank of a role, 0 for unknown roles.
func Rank(role string) int {
	return roleRanks[role]
}

// HasRoleOrHigher reports whether role is at least as privileged as
// required. An unknown caller role is false for every requirement.
func HasRoleOrHigher(role, required string) bool {
	r := Rank(role)
	if r == 0 {
		return false
	}
	return r >= Rank(required)
}

// DefaultRolePermissions is the permission set materialized into grant rows
// whenever a role is assigned. The grant table, not the role, is what the
// permission checks consult, so fine-grained overrides stay possible.
var DefaultRolePermissions = map[string][]string{
	RoleSuperAdmin: {
		PermManageUsers, PermManageGames, PermManageResults,
		PermManageContent, PermViewAnalytics, PermManageSettings,
	},
	RoleAdmin: {
		PermManageGames, PermManageResults, PermManageContent, PermViewAnalytics,
	},
	RoleGameManager:    {PermManageGames, PermManageResults},
	RoleContentManager: {PermManageContent},
	RoleResultOperator: {PermManageResults},
	RoleViewer:         {PermViewAnalytics},
	RoleUser:           {},
}

// IsActiveGrant reports whether a grant is active at the given instant:
// no expiry, or expiry in the future.
func IsActiveGrant(grant models.UserPermission, now time.Time) bool {
	return grant.ExpiresAt == nil || grant.ExpiresAt.After(now)
}

// Authorize decides whether the caller may perform an action guarded by the
// given permission. It checks grants only, never role rank, and fails closed:
// nil profile, inactive account or no matching active grant all deny.
func Authorize(profile *models.Profile, grants []models.UserPermission, permission string, now time.Time) bool {
	if profile == nil || !profile.IsActive {
		return false
	}
	for _, grant := range grants {
		if grant.Permission == permission && IsActiveGrant(grant, now) {
			return true
		}
	}
	return false
}

// ActivePermissions filters a grant list down to the set of active
// permission names.
func ActivePermissions(grants []models.UserPermission, now time.Time) map[string]bool {
	perms := make(map[string]bool, len(grants))
	for _, grant := range grants {
		if IsActiveGrant(grant, now) {
			perms[grant.Permission] = true
		}
	}
	return perms
}

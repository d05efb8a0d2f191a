package handler

import (
	app_errors "satta-board/internal/errors"
	"satta-board/internal/middleware"
	"satta-board/internal/models"
	"satta-board/internal/response"
	"satta-board/internal/services"

	"github.com/gin-gonic/gin"
)

// ListUsers returns profiles, newest first, paginated.
// GET /api/users
func (s *Server) ListUsers(c *gin.Context) {
	query := s.DB.Model(&models.Profile{}).Order("created_at desc")
	var profiles []models.Profile
	result, err := response.Paginate(c, query, &profiles)
	if err != nil {
		response.Error(c, app_errors.ParseDBError(err))
		return
	}
	response.Success(c, result)
}

// CreateUser creates a user. Assigning a role above plain user requires a
// super_admin caller.
// POST /api/users
func (s *Server) CreateUser(c *gin.Context) {
	var req services.CreateUserParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	actor, _ := middleware.ProfileFromContext(c)

	profile, err := s.Users.CreateUser(req, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.created", profile)
}

// GetUser returns one profile with its grants.
// GET /api/users/:user_id
func (s *Server) GetUser(c *gin.Context) {
	userID := c.Param("user_id")
	profile, err := s.Users.GetProfile(userID)
	if HandleServiceError(c, err) {
		return
	}
	grants, err := s.Users.ListGrants(userID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, gin.H{"profile": profile, "permissions": grants})
}

// UpdateUser edits a profile (self or super_admin).
// PUT /api/users/:user_id
func (s *Server) UpdateUser(c *gin.Context) {
	var req services.UpdateProfileParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	actor, _ := middleware.ProfileFromContext(c)

	profile, err := s.Users.UpdateProfile(c.Param("user_id"), req, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.updated", profile)
}

// AssignRoleRequest names the role to assign.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AssignRole assigns a role and rebuilds the user's grants (super_admin).
// PUT /api/users/:user_id/role
func (s *Server) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	actor, _ := middleware.ProfileFromContext(c)

	profile, err := s.Users.AssignRole(c.Param("user_id"), req.Role, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.updated", profile)
}

// UpdatePasswordRequest carries a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UpdatePassword changes a password (self with current password, or
// super_admin without).
// PUT /api/users/:user_id/password
func (s *Server) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	actor, _ := middleware.ProfileFromContext(c)

	err := s.Users.UpdatePassword(c.Param("user_id"), req.CurrentPassword, req.NewPassword, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.password_set", nil)
}

// EnsurePublicUsername generates the user's public username when missing.
// POST /api/users/:user_id/public-username
func (s *Server) EnsurePublicUsername(c *gin.Context) {
	profile, err := s.Users.EnsurePublicUsername(c.Param("user_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.updated", profile)
}

// PasswordResetRequest starts a reset flow.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset issues a reset token. The response never reveals
// whether the email exists.
// POST /api/auth/password-reset
func (s *Server) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if _, err := s.Users.RequestPasswordReset(req.Email); HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.reset_sent", nil)
}

// PasswordResetCompleteRequest consumes a reset token.
type PasswordResetCompleteRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// CompletePasswordReset consumes a reset token and sets the new password.
// POST /api/auth/password-reset/complete
func (s *Server) CompletePasswordReset(c *gin.Context) {
	var req PasswordResetCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if err := s.Users.ResetPassword(req.Token, req.NewPassword); HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.password_set", nil)
}

// UpdateOwnProfile edits the caller's own profile.
// PUT /api/profile
func (s *Server) UpdateOwnProfile(c *gin.Context) {
	actor, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}
	var req services.UpdateProfileParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	profile, err := s.Users.UpdateProfile(actor.UserID, req, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.updated", profile)
}

// UpdateOwnPassword changes the caller's own password.
// PUT /api/profile/password
func (s *Server) UpdateOwnPassword(c *gin.Context) {
	actor, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	err := s.Users.UpdatePassword(actor.UserID, req.CurrentPassword, req.NewPassword, actor)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "user.password_set", nil)
}

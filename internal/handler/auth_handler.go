package handler

import (
	"sort"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/middleware"
	"satta-board/internal/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session token and the profile.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Profile   any    `json:"profile"`
}

// Login authenticates credentials and issues a session token.
// POST /api/auth/login
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	profile, err := s.Users.Authenticate(req.Email, req.Password)
	if HandleServiceError(c, err) {
		return
	}

	session, err := s.Sessions.Create(profile)
	if HandleServiceError(c, err) {
		return
	}

	response.Success(c, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Profile:   profile,
	})
}

// Logout destroys the caller's session.
// POST /api/auth/logout
func (s *Server) Logout(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}
	if err := s.Sessions.Destroy(session.Token); HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "auth.logged_out", nil)
}

// Me returns the caller's profile and active permissions.
// GET /api/auth/me
func (s *Server) Me(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c)
	if !ok {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}
	perms, _ := middleware.PermissionsFromContext(c)

	names := make([]string, 0, len(perms))
	for name := range perms {
		names = append(names, name)
	}
	sort.Strings(names)

	response.Success(c, gin.H{
		"profile":     profile,
		"permissions": names,
	})
}

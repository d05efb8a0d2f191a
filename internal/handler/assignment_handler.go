package handler

import (
	app_errors "satta-board/internal/errors"
	"satta-board/internal/response"

	"github.com/gin-gonic/gin"
)

// AssignGameRequest links a game to a user.
type AssignGameRequest struct {
	UserID string `json:"user_id" binding:"required"`
	GameID uint   `json:"game_id" binding:"required"`
}

// ListAssignments returns all user-game links.
// GET /api/assignments
func (s *Server) ListAssignments(c *gin.Context) {
	assignments, err := s.Assignments.ListAll()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, assignments)
}

// AssignGame links a game to a user.
// POST /api/assignments
func (s *Server) AssignGame(c *gin.Context) {
	var req AssignGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	assignment, err := s.Assignments.Assign(req.UserID, req.GameID)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, assignment)
}

// UnassignGame removes a user-game link.
// DELETE /api/assignments/:user_id/:game_id
func (s *Server) UnassignGame(c *gin.Context) {
	gameID, ok := parseUintParam(c, "game_id")
	if !ok {
		return
	}
	if err := s.Assignments.Unassign(c.Param("user_id"), gameID); HandleServiceError(c, err) {
		return
	}
	response.Success(c, nil)
}

// UserGames returns the games assigned to a user.
// GET /api/assignments/:user_id
func (s *Server) UserGames(c *gin.Context) {
	games, err := s.Assignments.ListForUser(c.Param("user_id"))
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, games)
}

package handler

import (
	"strconv"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/response"
	"satta-board/internal/services"

	"github.com/gin-gonic/gin"
)

// parseUintParam reads a positive integer path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid "+name))
		return 0, false
	}
	return uint(v), true
}

// ListGames returns all games.
// GET /api/games
func (s *Server) ListGames(c *gin.Context) {
	enabledOnly := c.Query("enabled") == "true"
	games, err := s.Games.ListGames(enabledOnly)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, games)
}

// CreateGame creates a game.
// POST /api/games
func (s *Server) CreateGame(c *gin.Context) {
	var req services.GameParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	game, err := s.Games.CreateGame(req)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "game.created", game)
}

// GetGame returns one game.
// GET /api/games/:id
func (s *Server) GetGame(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	game, err := s.Games.GetGame(id)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, game)
}

// UpdateGame updates a game's metadata.
// PUT /api/games/:id
func (s *Server) UpdateGame(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.GameParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	game, err := s.Games.UpdateGame(id, req)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "game.updated", game)
}

// DeleteGame removes a game and its history.
// DELETE /api/games/:id
func (s *Server) DeleteGame(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := s.Games.DeleteGame(id); HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "game.deleted", nil)
}

// PublishResultRequest is the manual result entry payload.
type PublishResultRequest struct {
	Result int    `json:"result"`
	Note   string `json:"note"`
}

// PublishResult publishes today's result for a game as a manual entry.
// POST /api/games/:id/result
func (s *Server) PublishResult(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req PublishResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	game, err := s.Games.PublishResult(id, req.Result, models.ModeManual, req.Note)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "game.result_set", game)
}

// ClearResult clears today's result, returning the game to pending.
// DELETE /api/games/:id/result
func (s *Server) ClearResult(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	game, err := s.Games.ClearResult(id)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "game.result_cleared", game)
}

// GameHistory returns a game's result ledger.
// GET /api/games/:id/history
func (s *Server) GameHistory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "90"))
	rows, err := s.Games.History(id, limit)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, rows)
}

// DashboardStats returns the admin dashboard cards.
// GET /api/dashboard/stats
func (s *Server) DashboardStats(c *gin.Context) {
	stats, err := s.Games.DashboardStats()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, stats)
}

package handler

import (
	"strconv"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/response"

	"github.com/gin-gonic/gin"
)

// RunMigration snapshots all games and rolls them into a new day.
// POST /api/migration/run and POST /api/jobs/daily-migration
func (s *Server) RunMigration(c *gin.Context) {
	report, err := s.Lifecycle.RunDailyMigration()
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "migration.completed", report)
}

// UndoMigrationRequest selects the backup to restore; zero means latest.
type UndoMigrationRequest struct {
	BackupID uint `json:"backup_id"`
}

// UndoMigration restores a rollover backup, exactly once.
// POST /api/migration/undo and POST /api/jobs/undo-migration
func (s *Server) UndoMigration(c *gin.Context) {
	var req UndoMigrationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	var err error
	var report any
	if req.BackupID > 0 {
		report, err = s.Lifecycle.UndoMigration(req.BackupID)
	} else {
		report, err = s.Lifecycle.UndoLatest()
	}
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "migration.restored", report)
}

// ListBackups returns recent migration backups.
// GET /api/migration/backups
func (s *Server) ListBackups(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	backups, err := s.Lifecycle.ListBackups(limit)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, backups)
}

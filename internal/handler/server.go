// Package handler implements the HTTP endpoints of the admin, public and
// jobs APIs.
package handler

import (
	"time"

	"satta-board/internal/auth"
	"satta-board/internal/response"
	"satta-board/internal/services"
	"satta-board/internal/store"
	"satta-board/internal/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server aggregates the services behind the HTTP endpoints.
type Server struct {
	DB            *gorm.DB
	Store         store.Store
	ConfigManager types.ConfigManager
	Sessions      *auth.SessionManager
	Games         *services.GameService
	Lifecycle     *services.LifecycleService
	BulkUploadSvc *services.BulkUploadService
	FileImportSvc *services.FileImportService
	ScrapeImport  *services.ScrapeImportService
	Users         *services.UserService
	Assignments   *services.AssignmentService
	Website       *services.WebsiteService
}

// ServerParams groups the dependencies injected into the Server.
type ServerParams struct {
	DB            *gorm.DB
	Store         store.Store
	ConfigManager types.ConfigManager
	Sessions      *auth.SessionManager
	Games         *services.GameService
	Lifecycle     *services.LifecycleService
	BulkUpload    *services.BulkUploadService
	FileImport    *services.FileImportService
	ScrapeImport  *services.ScrapeImportService
	Users         *services.UserService
	Assignments   *services.AssignmentService
	Website       *services.WebsiteService
}

// NewServer creates a Server.
func NewServer(params ServerParams) *Server {
	return &Server{
		DB:            params.DB,
		Store:         params.Store,
		ConfigManager: params.ConfigManager,
		Sessions:      params.Sessions,
		Games:         params.Games,
		Lifecycle:     params.Lifecycle,
		BulkUploadSvc: params.BulkUpload,
		FileImportSvc: params.FileImport,
		ScrapeImport:  params.ScrapeImport,
		Users:         params.Users,
		Assignments:   params.Assignments,
		Website:       params.Website,
	}
}

// Health is the liveness probe.
func (s *Server) Health(c *gin.Context) {
	uptime := ""
	if v, exists := c.Get("serverStartTime"); exists {
		if start, ok := v.(time.Time); ok {
			uptime = time.Since(start).Truncate(time.Second).String()
		}
	}
	response.Success(c, gin.H{
		"status": "healthy",
		"uptime": uptime,
	})
}

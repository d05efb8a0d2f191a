package handler

import (
	"net/http"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/response"
	"satta-board/internal/services"

	"github.com/gin-gonic/gin"
)

// maxImportFileSize caps uploaded result sheets.
const maxImportFileSize = 5 << 20

// BulkUploadRequest is the JSON bulk upload payload.
type BulkUploadRequest struct {
	Rows []services.BulkUploadRow `json:"rows" binding:"required"`
}

// BulkUpload applies a batch of dated results with per-row error reporting.
// POST /api/results/bulk
func (s *Server) BulkUpload(c *gin.Context) {
	var req BulkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if len(req.Rows) == 0 {
		response.Error(c, app_errors.NewValidationError("rows must not be empty"))
		return
	}

	report, err := s.BulkUploadSvc.Process(req.Rows)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "import.completed", report)
}

// FileImport applies an uploaded CSV sheet, all-or-nothing.
// POST /api/results/import
func (s *Server) FileImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "missing file upload"))
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		response.Error(c, app_errors.NewValidationError("file too large"))
		return
	}

	report, err := s.FileImportSvc.Import(file)
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "import.completed", report)
}

// ImportTemplate serves the downloadable CSV template.
// GET /api/results/import/template
func (s *Server) ImportTemplate(c *gin.Context) {
	data, err := s.FileImportSvc.Template()
	if HandleServiceError(c, err) {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="results-template.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ScrapeSync pulls results from the configured external source.
// POST /api/results/sync and POST /api/jobs/auto-sync
func (s *Server) ScrapeSync(c *gin.Context) {
	report, err := s.ScrapeImport.Run(c.Request.Context())
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "import.completed", report)
}

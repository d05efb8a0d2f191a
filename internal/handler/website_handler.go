package handler

import (
	app_errors "satta-board/internal/errors"
	"satta-board/internal/response"
	"satta-board/internal/services"

	"github.com/gin-gonic/gin"
)

// GetWebsiteConfig returns the site metadata.
// GET /api/website/config
func (s *Server) GetWebsiteConfig(c *gin.Context) {
	config, err := s.Website.GetConfig()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, config)
}

// UpdateWebsiteConfig applies a partial site metadata update.
// PUT /api/website/config
func (s *Server) UpdateWebsiteConfig(c *gin.Context) {
	var req services.WebsiteConfigParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	config, err := s.Website.UpdateConfig(req)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, config)
}

// GetTheme returns the theme settings.
// GET /api/website/theme
func (s *Server) GetTheme(c *gin.Context) {
	theme, err := s.Website.GetTheme()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, theme)
}

// UpdateTheme switches themes and/or patches palette keys.
// PUT /api/website/theme
func (s *Server) UpdateTheme(c *gin.Context) {
	var req services.ThemeParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	theme, err := s.Website.UpdateTheme(req)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, theme)
}

// GetPageSections returns all page section rows.
// GET /api/website/sections
func (s *Server) GetPageSections(c *gin.Context) {
	sections, err := s.Website.GetSections()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, sections)
}

// UpdateSectionsRequest replaces one page's section visibility map.
type UpdateSectionsRequest struct {
	Sections map[string]bool `json:"sections" binding:"required"`
}

// UpdatePageSections replaces a page's section visibility map.
// PUT /api/website/sections/:page
func (s *Server) UpdatePageSections(c *gin.Context) {
	var req UpdateSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	row, err := s.Website.UpdateSections(c.Param("page"), req.Sections)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, row)
}

// ListCustomCSS returns all CSS fragments.
// GET /api/website/css
func (s *Server) ListCustomCSS(c *gin.Context) {
	rows, err := s.Website.ListCustomCSS()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, rows)
}

// CreateCustomCSS adds a CSS fragment.
// POST /api/website/css
func (s *Server) CreateCustomCSS(c *gin.Context) {
	var req services.CustomCSSParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	row, err := s.Website.CreateCustomCSS(req)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, row)
}

// UpdateCustomCSS edits a CSS fragment.
// PUT /api/website/css/:id
func (s *Server) UpdateCustomCSS(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.CustomCSSParams
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	row, err := s.Website.UpdateCustomCSS(id, req)
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, row)
}

// DeleteCustomCSS removes a CSS fragment.
// DELETE /api/website/css/:id
func (s *Server) DeleteCustomCSS(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := s.Website.DeleteCustomCSS(id); HandleServiceError(c, err) {
		return
	}
	response.Success(c, nil)
}

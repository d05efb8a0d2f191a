package services

import (
	"encoding/json"
	"errors"
	"fmt"

	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gorm.io/gorm"
)

// WebsiteService manages the website builder config: site metadata, theme,
// page sections and custom CSS.
type WebsiteService struct {
	db *gorm.DB
}

// NewWebsiteService creates a WebsiteService.
func NewWebsiteService(db *gorm.DB) *WebsiteService {
	return &WebsiteService{db: db}
}

// GetConfig returns the singleton site config row.
func (s *WebsiteService) GetConfig() (*models.WebsiteConfig, error) {
	var config models.WebsiteConfig
	if err := s.db.First(&config).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &config, nil
}

// WebsiteConfigParams are the editable site metadata fields. Nil fields are
// left untouched.
type WebsiteConfigParams struct {
	SiteName        *string `json:"site_name"`
	Tagline         *string `json:"tagline"`
	MetaDescription *string `json:"meta_description"`
	ContactText     *string `json:"contact_text"`
	MarqueeText     *string `json:"marquee_text"`
}

// UpdateConfig applies a partial update to the site config.
func (s *WebsiteService) UpdateConfig(params WebsiteConfigParams) (*models.WebsiteConfig, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}

	if params.SiteName != nil {
		if *params.SiteName == "" {
			return nil, app_errors.NewValidationError("site_name cannot be empty")
		}
		config.SiteName = *params.SiteName
	}
	if params.Tagline != nil {
		config.Tagline = *params.Tagline
	}
	if params.MetaDescription != nil {
		config.MetaDescription = *params.MetaDescription
	}
	if params.ContactText != nil {
		config.ContactText = *params.ContactText
	}
	if params.MarqueeText != nil {
		config.MarqueeText = *params.MarqueeText
	}

	if err := s.db.Save(config).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return config, nil
}

// GetTheme returns the singleton theme row.
func (s *WebsiteService) GetTheme() (*models.ThemeSettings, error) {
	var theme models.ThemeSettings
	if err := s.db.First(&theme).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &theme, nil
}

// ThemeParams carry an optional theme switch and a key-wise palette patch.
type ThemeParams struct {
	ActiveTheme *string           `json:"active_theme"`
	Palette     map[string]string `json:"palette"`
}

// UpdateTheme switches the active theme and/or patches palette keys. Each
// patch entry is set individually so sibling keys are never clobbered.
func (s *WebsiteService) UpdateTheme(params ThemeParams) (*models.ThemeSettings, error) {
	theme, err := s.GetTheme()
	if err != nil {
		return nil, err
	}

	if params.ActiveTheme != nil {
		if *params.ActiveTheme == "" {
			return nil, app_errors.NewValidationError("active_theme cannot be empty")
		}
		theme.ActiveTheme = *params.ActiveTheme
	}

	if len(params.Palette) > 0 {
		palette := theme.Palette
		if len(palette) == 0 || !gjson.ValidBytes(palette) {
			palette = []byte("{}")
		}
		for key, value := range params.Palette {
			patched, err := sjson.SetBytes(palette, key, value)
			if err != nil {
				return nil, app_errors.NewValidationError(fmt.Sprintf("invalid palette key %q", key))
			}
			palette = patched
		}
		theme.Palette = palette
	}

	if err := s.db.Save(theme).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return theme, nil
}

// GetSections returns all page section rows.
func (s *WebsiteService) GetSections() ([]models.PageSection, error) {
	var sections []models.PageSection
	if err := s.db.Order("page").Find(&sections).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return sections, nil
}

// UpdateSections replaces the section visibility map for one page.
func (s *WebsiteService) UpdateSections(page string, sections map[string]bool) (*models.PageSection, error) {
	if page == "" {
		return nil, app_errors.NewValidationError("page is required")
	}
	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, app_errors.NewValidationError("invalid sections payload")
	}

	var row models.PageSection
	err = s.db.Where("page = ?", page).First(&row).Error
	switch {
	case err == nil:
		row.Sections = payload
		err = s.db.Save(&row).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.PageSection{Page: page, Sections: payload}
		err = s.db.Create(&row).Error
	}
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &row, nil
}

// CustomCSSParams are the editable custom CSS fields.
type CustomCSSParams struct {
	Name    string `json:"name" binding:"required"`
	CSS     string `json:"css" binding:"required"`
	Enabled *bool  `json:"enabled"`
}

// CreateCustomCSS adds a CSS fragment.
func (s *WebsiteService) CreateCustomCSS(params CustomCSSParams) (*models.CustomCSS, error) {
	row := &models.CustomCSS{Name: params.Name, CSS: params.CSS, Enabled: true}
	if params.Enabled != nil {
		row.Enabled = *params.Enabled
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return row, nil
}

// UpdateCustomCSS edits a CSS fragment.
func (s *WebsiteService) UpdateCustomCSS(id uint, params CustomCSSParams) (*models.CustomCSS, error) {
	var row models.CustomCSS
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	row.Name = params.Name
	row.CSS = params.CSS
	if params.Enabled != nil {
		row.Enabled = *params.Enabled
	}
	if err := s.db.Save(&row).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &row, nil
}

// DeleteCustomCSS removes a CSS fragment.
func (s *WebsiteService) DeleteCustomCSS(id uint) error {
	result := s.db.Delete(&models.CustomCSS{}, id)
	if result.Error != nil {
		return app_errors.ParseDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return app_errors.ErrResourceNotFound
	}
	return nil
}

// ListCustomCSS returns all CSS fragments.
func (s *WebsiteService) ListCustomCSS() ([]models.CustomCSS, error) {
	var rows []models.CustomCSS
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return rows, nil
}

// PublicSiteConfig is the merged read model served to the public frontend.
type PublicSiteConfig struct {
	Config   *models.WebsiteConfig `json:"config"`
	Theme    *models.ThemeSettings `json:"theme"`
	Sections []models.PageSection  `json:"sections"`
	CSS      []models.CustomCSS    `json:"css"`
}

// PublicConfig aggregates everything the public site needs in one call.
// Only enabled CSS fragments are included.
func (s *WebsiteService) PublicConfig() (*PublicSiteConfig, error) {
	config, err := s.GetConfig()
	if err != nil {
		return nil, err
	}
	theme, err := s.GetTheme()
	if err != nil {
		return nil, err
	}
	sections, err := s.GetSections()
	if err != nil {
		return nil, err
	}
	var css []models.CustomCSS
	if err := s.db.Where("enabled = ?", true).Order("id").Find(&css).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	return &PublicSiteConfig{Config: config, Theme: theme, Sections: sections, CSS: css}, nil
}

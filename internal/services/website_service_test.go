package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestWebsiteService(t *testing.T) *WebsiteService {
	t.Helper()
	return NewWebsiteService(newTestDB(t))
}

func TestWebsiteConfigSeededAndPartialUpdate(t *testing.T) {
	site := newTestWebsiteService(t)

	config, err := site.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "Satta Board", config.SiteName)

	tagline := "Fresh results daily"
	updated, err := site.UpdateConfig(WebsiteConfigParams{Tagline: &tagline})
	require.NoError(t, err)
	assert.Equal(t, "Fresh results daily", updated.Tagline)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Satta Board", updated.SiteName)

	empty := ""
	_, err = site.UpdateConfig(WebsiteConfigParams{SiteName: &empty})
	require.Error(t, err)
}

func TestUpdateThemePatchesPaletteKeys(t *testing.T) {
	site := newTestWebsiteService(t)

	theme, err := site.UpdateTheme(ThemeParams{
		Palette: map[string]string{"colors.primary": "#0f172a"},
	})
	require.NoError(t, err)

	palette := gjson.ParseBytes(theme.Palette)
	assert.Equal(t, "#0f172a", palette.Get("colors.primary").String())
	// Sibling keys from the seeded palette are untouched.
	assert.Equal(t, "#f59e0b", palette.Get("colors.accent").String())
	assert.Equal(t, "Oswald", palette.Get("typography.heading").String())
}

func TestUpdateThemeSwitchesActiveTheme(t *testing.T) {
	site := newTestWebsiteService(t)

	dark := "midnight"
	theme, err := site.UpdateTheme(ThemeParams{ActiveTheme: &dark})
	require.NoError(t, err)
	assert.Equal(t, "midnight", theme.ActiveTheme)

	empty := ""
	_, err = site.UpdateTheme(ThemeParams{ActiveTheme: &empty})
	require.Error(t, err)
}

func TestUpdateSectionsUpsert(t *testing.T) {
	site := newTestWebsiteService(t)

	row, err := site.UpdateSections("home", map[string]bool{"marquee": false, "charts": true})
	require.NoError(t, err)
	sections := gjson.ParseBytes(row.Sections)
	assert.False(t, sections.Get("marquee").Bool())
	assert.True(t, sections.Get("charts").Bool())

	// An unseeded page gets a fresh row.
	row, err = site.UpdateSections("faq", map[string]bool{"questions": true})
	require.NoError(t, err)
	assert.Equal(t, "faq", row.Page)

	all, err := site.GetSections()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = site.UpdateSections("", nil)
	require.Error(t, err)
}

func TestCustomCSSLifecycle(t *testing.T) {
	site := newTestWebsiteService(t)

	created, err := site.CreateCustomCSS(CustomCSSParams{Name: "banner", CSS: ".banner{color:red}"})
	require.NoError(t, err)
	assert.True(t, created.Enabled)

	off := false
	updated, err := site.UpdateCustomCSS(created.ID, CustomCSSParams{Name: "banner", CSS: ".banner{color:blue}", Enabled: &off})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Contains(t, updated.CSS, "blue")

	require.NoError(t, site.DeleteCustomCSS(created.ID))
	err = site.DeleteCustomCSS(created.ID)
	require.Error(t, err)
}

func TestPublicConfigFiltersDisabledCSS(t *testing.T) {
	site := newTestWebsiteService(t)

	_, err := site.CreateCustomCSS(CustomCSSParams{Name: "live", CSS: ".a{}"})
	require.NoError(t, err)
	off := false
	_, err = site.CreateCustomCSS(CustomCSSParams{Name: "draft", CSS: ".b{}", Enabled: &off})
	require.NoError(t, err)

	public, err := site.PublicConfig()
	require.NoError(t, err)
	require.NotNil(t, public.Config)
	require.NotNil(t, public.Theme)
	assert.NotEmpty(t, public.Sections)
	require.Len(t, public.CSS, 1)
	assert.Equal(t, "live", public.CSS[0].Name)
}

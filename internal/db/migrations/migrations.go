// Package migrations prepares the database schema and seeds the singleton
// configuration rows the website builder expects to exist.
package migrations

import (
	"errors"
	"fmt"

	"satta-board/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MigrateDatabase runs schema auto-migration and seeds defaults.
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Game{},
		&models.GameResultHistory{},
		&models.Profile{},
		&models.UserPermission{},
		&models.GameAssignment{},
		&models.MigrationBackup{},
		&models.WebsiteConfig{},
		&models.ThemeSettings{},
		&models.PageSection{},
		&models.CustomCSS{},
	); err != nil {
		return fmt.Errorf("database auto-migration failed: %w", err)
	}

	if err := seedWebsiteDefaults(db); err != nil {
		return fmt.Errorf("seeding website defaults failed: %w", err)
	}

	logrus.Info("Database migration completed.")
	return nil
}

var defaultPalette = datatypes.JSON([]byte(`{
	"colors": {"primary": "#b91c1c", "accent": "#f59e0b", "background": "#fffbeb", "text": "#1c1917"},
	"typography": {"heading": "Oswald", "body": "Roboto", "base_size": "16px"}
}`))

var defaultSections = map[string]datatypes.JSON{
	"home":    datatypes.JSON([]byte(`{"marquee": true, "live_results": true, "yesterday_results": true, "charts": true, "disclaimer": true}`)),
	"results": datatypes.JSON([]byte(`{"board": true, "history": true}`)),
	"about":   datatypes.JSON([]byte(`{"content": true, "contact": true}`)),
}

// seedWebsiteDefaults inserts the singleton configuration rows when absent.
func seedWebsiteDefaults(db *gorm.DB) error {
	var cfg models.WebsiteConfig
	if err := db.First(&cfg).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.WebsiteConfig{
			SiteName: "Satta Board",
			Tagline:  "Daily results, published on time",
		}).Error; err != nil {
			return err
		}
	}

	var theme models.ThemeSettings
	if err := db.First(&theme).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.ThemeSettings{
			ActiveTheme: "classic",
			Palette:     defaultPalette,
		}).Error; err != nil {
			return err
		}
	}

	for page, sections := range defaultSections {
		var row models.PageSection
		if err := db.Where("page = ?", page).First(&row).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := db.Create(&models.PageSection{Page: page, Sections: sections}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Package container builds the dig dependency injection container.
package container

import (
	"satta-board/internal/app"
	"satta-board/internal/auth"
	"satta-board/internal/config"
	"satta-board/internal/db"
	"satta-board/internal/handler"
	"satta-board/internal/router"
	"satta-board/internal/scraper"
	"satta-board/internal/services"
	"satta-board/internal/store"
	"satta-board/internal/types"

	"go.uber.org/dig"
	"gorm.io/gorm"
)

// BuildContainer wires every application component.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		// Infrastructure
		config.NewManager,
		db.NewDB,
		store.NewStore,

		// Auth
		auth.NewSessionManager,

		// Domain services
		scraper.NewScraper,
		services.NewGameService,
		services.NewLifecycleService,
		services.NewBulkUploadService,
		services.NewFileImportService,
		services.NewScrapeImportService,
		services.NewUserService,
		services.NewAssignmentService,
		services.NewWebsiteService,
		services.NewScheduler,

		// HTTP layer
		newServerParams,
		handler.NewServer,
		router.NewRouter,

		// Application
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}

// newServerParams adapts the container's flat dependencies into the
// handler.Server parameter struct.
func newServerParams(deps serverDeps) handler.ServerParams {
	return handler.ServerParams{
		DB:            deps.DB,
		Store:         deps.Store,
		ConfigManager: deps.ConfigManager,
		Sessions:      deps.Sessions,
		Games:         deps.Games,
		Lifecycle:     deps.Lifecycle,
		BulkUpload:    deps.BulkUpload,
		FileImport:    deps.FileImport,
		ScrapeImport:  deps.ScrapeImport,
		Users:         deps.Users,
		Assignments:   deps.Assignments,
		Website:       deps.Website,
	}
}

// serverDeps collects the handler.Server dependencies from the container.
type serverDeps struct {
	dig.In

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

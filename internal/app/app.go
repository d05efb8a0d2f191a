// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dbmigrations "satta-board/internal/db/migrations"
	"satta-board/internal/i18n"
	"satta-board/internal/services"
	"satta-board/internal/store"
	"satta-board/internal/types"
	"satta-board/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine        *gin.Engine
	configManager types.ConfigManager
	userService   *services.UserService
	scheduler     *services.Scheduler
	storage       store.Store
	db            *gorm.DB
	httpServer    *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In

	Engine        *gin.Engine
	ConfigManager types.ConfigManager
	UserService   *services.UserService
	Scheduler     *services.Scheduler
	Storage       store.Store
	DB            *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:        params.Engine,
		configManager: params.ConfigManager,
		userService:   params.UserService,
		scheduler:     params.Scheduler,
		storage:       params.Storage,
		db:            params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}

	if err := dbmigrations.MigrateDatabase(a.db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	logrus.Info("Database migration completed.")

	if err := a.userService.EnsureBootstrapAdmin(); err != nil {
		return fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	a.scheduler.Start()

	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("Satta board server started, version %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	serverConfig := a.configManager.GetEffectiveServerConfig()
	totalTimeout := time.Duration(serverConfig.GracefulShutdownTimeout) * time.Second

	// Reserve a slice of the budget for background services
	httpShutdownTimeout := totalTimeout - 2*time.Second
	if httpShutdownTimeout < time.Second {
		httpShutdownTimeout = time.Second
	}
	httpShutdownCtx, cancelHTTPShutdown := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancelHTTPShutdown()

	if err := a.httpServer.Shutdown(httpShutdownCtx); err != nil {
		logrus.Debug("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
		if closeErr := a.httpServer.Close(); closeErr != nil {
			logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
		}
	}
	logrus.Info("HTTP server has been shut down.")

	a.scheduler.Stop(ctx)

	if err := a.storage.Close(); err != nil {
		logrus.Errorf("Error closing store: %v", err)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("Error closing database: %v", err)
		}
	}

	logrus.Info("Server exited gracefully")
}

// Package config loads and validates application configuration from the
// environment (.env supported via godotenv).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"satta-board/internal/types"
	"satta-board/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Manager implements types.ConfigManager on top of environment variables.
type Manager struct {
	serverConfig      types.ServerConfig
	authConfig        types.AuthConfig
	jobConfig         types.JobConfig
	corsConfig        types.CORSConfig
	performanceConfig types.PerformanceConfig
	logConfig         types.LogConfig
	databaseConfig    types.DatabaseConfig
	redisDSN          string
	scrapeConfig      types.ScrapeConfig
	schedulerConfig   types.SchedulerConfig
}

// NewManager creates a configuration manager and validates the result.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	m := &Manager{
		serverConfig: types.ServerConfig{
			Host:                    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
			Port:                    utils.ParseInteger(os.Getenv("PORT"), 3001),
			ReadTimeout:             utils.ParseInteger(os.Getenv("SERVER_READ_TIMEOUT"), 60),
			WriteTimeout:            utils.ParseInteger(os.Getenv("SERVER_WRITE_TIMEOUT"), 60),
			IdleTimeout:             utils.ParseInteger(os.Getenv("SERVER_IDLE_TIMEOUT"), 120),
			GracefulShutdownTimeout: utils.ParseInteger(os.Getenv("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT"), 10),
		},
		authConfig: types.AuthConfig{
			BootstrapEmail:    utils.GetEnvOrDefault("BOOTSTRAP_ADMIN_EMAIL", ""),
			BootstrapPassword: utils.GetEnvOrDefault("BOOTSTRAP_ADMIN_PASSWORD", ""),
			SessionTTLMinutes: utils.ParseInteger(os.Getenv("SESSION_TTL_MINUTES"), 720),
		},
		jobConfig: types.JobConfig{
			Key: os.Getenv("JOB_KEY"),
		},
		corsConfig: types.CORSConfig{
			Enabled:          utils.ParseBoolean(os.Getenv("ENABLE_CORS"), true),
			AllowedOrigins:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_ORIGINS", "*"), ","),
			AllowedMethods:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"), ","),
			AllowedHeaders:   utils.SplitAndTrim(utils.GetEnvOrDefault("ALLOWED_HEADERS", "Content-Type,Authorization"), ","),
			AllowCredentials: utils.ParseBoolean(os.Getenv("ALLOW_CREDENTIALS"), false),
		},
		performanceConfig: types.PerformanceConfig{
			MaxConcurrentRequests: utils.ParseInteger(os.Getenv("MAX_CONCURRENT_REQUESTS"), 100),
		},
		logConfig: types.LogConfig{
			Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
			Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: utils.ParseBoolean(os.Getenv("LOG_ENABLE_FILE"), false),
			FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
		},
		databaseConfig: types.DatabaseConfig{
			DSN: utils.GetEnvOrDefault("DATABASE_DSN", "./data/satta-board.db"),
		},
		redisDSN: os.Getenv("REDIS_DSN"),
		scrapeConfig: types.ScrapeConfig{
			SourceURL:      os.Getenv("SCRAPE_SOURCE_URL"),
			ProxyURL:       os.Getenv("SCRAPE_PROXY_URL"),
			TimeoutSeconds: utils.ParseInteger(os.Getenv("SCRAPE_TIMEOUT_SECONDS"), 30),
		},
		schedulerConfig: types.SchedulerConfig{
			EnableDailyMigration:    utils.ParseBoolean(os.Getenv("ENABLE_DAILY_MIGRATION"), false),
			AutoSyncIntervalMinutes: utils.ParseInteger(os.Getenv("AUTO_SYNC_INTERVAL_MINUTES"), 0),
			Timezone:                utils.GetEnvOrDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks configuration validity.
func (m *Manager) Validate() error {
	var errs []string

	if m.serverConfig.Port < 1 || m.serverConfig.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d", m.serverConfig.Port))
	}
	if m.databaseConfig.DSN == "" {
		errs = append(errs, "DATABASE_DSN is required")
	}
	if m.jobConfig.Key != "" && len(m.jobConfig.Key) < 16 {
		errs = append(errs, "JOB_KEY must be at least 16 characters")
	}
	if m.authConfig.SessionTTLMinutes < 1 {
		errs = append(errs, "SESSION_TTL_MINUTES must be positive")
	}
	if m.schedulerConfig.AutoSyncIntervalMinutes > 0 && m.scrapeConfig.SourceURL == "" {
		errs = append(errs, "AUTO_SYNC_INTERVAL_MINUTES requires SCRAPE_SOURCE_URL")
	}
	if _, err := loadLocation(m.schedulerConfig.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMEZONE: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (m *Manager) GetAuthConfig() types.AuthConfig               { return m.authConfig }
func (m *Manager) GetJobConfig() types.JobConfig                 { return m.jobConfig }
func (m *Manager) GetCORSConfig() types.CORSConfig               { return m.corsConfig }
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig { return m.performanceConfig }
func (m *Manager) GetLogConfig() types.LogConfig                 { return m.logConfig }
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig       { return m.databaseConfig }
func (m *Manager) GetRedisDSN() string                           { return m.redisDSN }
func (m *Manager) GetScrapeConfig() types.ScrapeConfig           { return m.scrapeConfig }
func (m *Manager) GetSchedulerConfig() types.SchedulerConfig     { return m.schedulerConfig }

// GetEffectiveServerConfig returns the server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig { return m.serverConfig }

// DisplayServerConfig logs the effective configuration at startup.
func (m *Manager) DisplayServerConfig() {
	logrus.Info("=== Server Configuration ===")
	logrus.Infof("  Address: %s:%d", m.serverConfig.Host, m.serverConfig.Port)
	logrus.Infof("  Database: %s", maskDSN(m.databaseConfig.DSN))
	if m.redisDSN != "" {
		logrus.Info("  Store: redis")
	} else {
		logrus.Info("  Store: memory")
	}
	logrus.Infof("  CORS: %v", m.corsConfig.Enabled)
	logrus.Infof("  Timezone: %s", m.schedulerConfig.Timezone)
	logrus.Infof("  Daily migration scheduler: %v", m.schedulerConfig.EnableDailyMigration)
	if m.schedulerConfig.AutoSyncIntervalMinutes > 0 {
		logrus.Infof("  Auto-sync interval: %dm", m.schedulerConfig.AutoSyncIntervalMinutes)
	}
}

// maskDSN hides credentials embedded in connection strings before logging.
func maskDSN(dsn string) string {
	if at := strings.LastIndex(dsn, "@"); at >= 0 {
		if scheme := strings.Index(dsn, "://"); scheme >= 0 && scheme+3 < at {
			return dsn[:scheme+3] + "***" + dsn[at:]
		}
		return "***" + dsn[at:]
	}
	return dsn
}

// loadLocation resolves a timezone name, treating "" as UTC.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

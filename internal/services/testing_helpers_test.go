package services

import (
	"testing"

	dbmigrations "satta-board/internal/db/migrations"
	"satta-board/internal/store"
	"satta-board/internal/types"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubConfig is a minimal ConfigManager for service tests.
type stubConfig struct {
	auth      types.AuthConfig
	scheduler types.SchedulerConfig
	scrape    types.ScrapeConfig
}

func (c *stubConfig) GetAuthConfig() types.AuthConfig               { return c.auth }
func (c *stubConfig) GetJobConfig() types.JobConfig                 { return types.JobConfig{} }
func (c *stubConfig) GetCORSConfig() types.CORSConfig               { return types.CORSConfig{} }
func (c *stubConfig) GetPerformanceConfig() types.PerformanceConfig { return types.PerformanceConfig{} }
func (c *stubConfig) GetLogConfig() types.LogConfig                 { return types.LogConfig{} }
func (c *stubConfig) GetDatabaseConfig() types.DatabaseConfig       { return types.DatabaseConfig{} }
func (c *stubConfig) GetRedisDSN() string                           { return "" }
func (c *stubConfig) GetScrapeConfig() types.ScrapeConfig           { return c.scrape }
func (c *stubConfig) GetSchedulerConfig() types.SchedulerConfig     { return c.scheduler }
func (c *stubConfig) GetEffectiveServerConfig() types.ServerConfig  { return types.ServerConfig{} }
func (c *stubConfig) Validate() error                               { return nil }
func (c *stubConfig) DisplayServerConfig()                          {}

func newStubConfig() *stubConfig {
	return &stubConfig{
		auth:      types.AuthConfig{SessionTTLMinutes: 60},
		scheduler: types.SchedulerConfig{Timezone: "UTC"},
	}
}

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbmigrations.MigrateDatabase(db))
	return db
}

// newTestGameService wires a GameService over a fresh DB and memory store.
func newTestGameService(t *testing.T) (*GameService, *gorm.DB, store.Store) {
	t.Helper()
	db := newTestDB(t)
	s := store.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return NewGameService(db, s, newStubConfig()), db, s
}

package types

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetAuthConfig() AuthConfig
	GetJobConfig() JobConfig
	GetCORSConfig() CORSConfig
	GetPerformanceConfig() PerformanceConfig
	GetLogConfig() LogConfig
	GetDatabaseConfig() DatabaseConfig
	GetRedisDSN() string
	GetScrapeConfig() ScrapeConfig
	GetSchedulerConfig() SchedulerConfig
	GetEffectiveServerConfig() ServerConfig
	Validate() error
	DisplayServerConfig()
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port                    int    `json:"port"`
	Host                    string `json:"host"`
	ReadTimeout             int    `json:"read_timeout"`
	WriteTimeout            int    `json:"write_timeout"`
	IdleTimeout             int    `json:"idle_timeout"`
	GracefulShutdownTimeout int    `json:"graceful_shutdown_timeout"`
}

// AuthConfig represents authentication configuration.
// BootstrapEmail/BootstrapPassword seed the first super_admin account on an
// empty database; SessionTTLMinutes bounds how long a login token stays valid.
type AuthConfig struct {
	BootstrapEmail    string `json:"bootstrap_email"`
	BootstrapPassword string `json:"-"`
	SessionTTLMinutes int    `json:"session_ttl_minutes"`
}

// JobConfig guards the unattended job endpoints (daily migration, auto-sync).
type JobConfig struct {
	Key string `json:"-"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
}

// PerformanceConfig represents performance configuration
type PerformanceConfig struct {
	MaxConcurrentRequests int `json:"max_concurrent_requests"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	EnableFile bool   `json:"enable_file"`
	FilePath   string `json:"file_path"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	DSN string `json:"dsn"`
}

// ScrapeConfig configures the external results-page scraper.
type ScrapeConfig struct {
	SourceURL      string `json:"source_url"`
	ProxyURL       string `json:"-"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SchedulerConfig configures the in-process recurring jobs. Both jobs can be
// left disabled when an external scheduler drives the /api/jobs endpoints.
type SchedulerConfig struct {
	EnableDailyMigration    bool   `json:"enable_daily_migration"`
	AutoSyncIntervalMinutes int    `json:"auto_sync_interval_minutes"`
	Timezone                string `json:"timezone"`
}

// Package router wires the HTTP routes: public board endpoints, the
// authenticated admin API and the unattended jobs API.
package router

import (
	"time"

	"satta-board/internal/auth"
	"satta-board/internal/handler"
	"satta-board/internal/i18n"
	"satta-board/internal/middleware"
	"satta-board/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(
	serverHandler *handler.Server,
	configManager types.ConfigManager,
	sessions *auth.SessionManager,
	db *gorm.DB,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())
	startTime := time.Now()
	router.Use(func(c *gin.Context) {
		c.Set("serverStartTime", startTime)
		c.Next()
	})

	router.GET("/health", serverHandler.Health)

	api := router.Group("/api")
	api.Use(i18n.Middleware())

	registerPublicRoutes(api, serverHandler)
	registerAdminRoutes(api, serverHandler, sessions, db)
	registerJobRoutes(api, serverHandler, configManager)

	return router
}

// registerPublicRoutes registers the unauthenticated endpoints.
func registerPublicRoutes(api *gin.RouterGroup, serverHandler *handler.Server) {
	api.POST("/auth/login", serverHandler.Login)
	api.POST("/auth/password-reset", serverHandler.RequestPasswordReset)
	api.POST("/auth/password-reset/complete", serverHandler.CompletePasswordReset)

	public := api.Group("/public")
	public.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		public.GET("/board", serverHandler.PublicBoard)
		public.GET("/games/:id/history", serverHandler.PublicGameHistory)
		public.GET("/site", serverHandler.PublicSiteConfig)
		public.GET("/u/:username", serverHandler.Microsite)
	}
	// SSE must not pass through the gzip writer
	api.GET("/public/events", serverHandler.ResultEvents)
}

// registerAdminRoutes registers the session-authenticated endpoints. Every
// write route sits behind the permission grant it needs.
func registerAdminRoutes(api *gin.RouterGroup, serverHandler *handler.Server, sessions *auth.SessionManager, db *gorm.DB) {
	admin := api.Group("")
	admin.Use(middleware.Auth(sessions, db))

	admin.POST("/auth/logout", serverHandler.Logout)
	admin.GET("/auth/me", serverHandler.Me)

	admin.GET("/dashboard/stats", middleware.RequirePermission(auth.PermViewAnalytics), serverHandler.DashboardStats)

	games := admin.Group("/games")
	{
		games.GET("", serverHandler.ListGames)
		games.GET("/:id", serverHandler.GetGame)
		games.GET("/:id/history", serverHandler.GameHistory)

		manage := games.Group("", middleware.RequirePermission(auth.PermManageGames))
		{
			manage.POST("", serverHandler.CreateGame)
			manage.PUT("/:id", serverHandler.UpdateGame)
			manage.DELETE("/:id", serverHandler.DeleteGame)
		}

		results := games.Group("", middleware.RequirePermission(auth.PermManageResults))
		{
			results.POST("/:id/result", serverHandler.PublishResult)
			results.DELETE("/:id/result", serverHandler.ClearResult)
		}
	}

	results := admin.Group("/results", middleware.RequirePermission(auth.PermManageResults))
	{
		results.POST("/bulk", serverHandler.BulkUpload)
		results.POST("/import", serverHandler.FileImport)
		results.GET("/import/template", serverHandler.ImportTemplate)
		results.POST("/sync", serverHandler.ScrapeSync)
	}

	migration := admin.Group("/migration", middleware.RequirePermission(auth.PermManageResults))
	{
		migration.POST("/run", serverHandler.RunMigration)
		migration.POST("/undo", serverHandler.UndoMigration)
		migration.GET("/backups", serverHandler.ListBackups)
	}

	users := admin.Group("/users", middleware.RequirePermission(auth.PermManageUsers))
	{
		users.GET("", serverHandler.ListUsers)
		users.POST("", serverHandler.CreateUser)
		users.GET("/:user_id", serverHandler.GetUser)
		users.PUT("/:user_id", serverHandler.UpdateUser)
		users.PUT("/:user_id/role", middleware.RequireRole(auth.RoleSuperAdmin), serverHandler.AssignRole)
		users.PUT("/:user_id/password", serverHandler.UpdatePassword)
		users.POST("/:user_id/public-username", serverHandler.EnsurePublicUsername)
	}
	// Self-service profile and password routes bypass manage_users; the
	// service enforces self-or-super_admin.
	admin.PUT("/profile", serverHandler.UpdateOwnProfile)
	admin.PUT("/profile/password", serverHandler.UpdateOwnPassword)

	assignments := admin.Group("/assignments", middleware.RequirePermission(auth.PermManageUsers))
	{
		assignments.GET("", serverHandler.ListAssignments)
		assignments.POST("", serverHandler.AssignGame)
		assignments.GET("/:user_id", serverHandler.UserGames)
		assignments.DELETE("/:user_id/:game_id", serverHandler.UnassignGame)
	}

	website := admin.Group("/website")
	{
		website.GET("/config", serverHandler.GetWebsiteConfig)
		website.GET("/theme", serverHandler.GetTheme)
		website.GET("/sections", serverHandler.GetPageSections)
		website.GET("/css", serverHandler.ListCustomCSS)

		content := website.Group("", middleware.RequirePermission(auth.PermManageContent))
		{
			content.PUT("/config", serverHandler.UpdateWebsiteConfig)
			content.PUT("/sections/:page", serverHandler.UpdatePageSections)
		}

		settings := website.Group("", middleware.RequirePermission(auth.PermManageSettings))
		{
			settings.PUT("/theme", serverHandler.UpdateTheme)
			settings.POST("/css", serverHandler.CreateCustomCSS)
			settings.PUT("/css/:id", serverHandler.UpdateCustomCSS)
			settings.DELETE("/css/:id", serverHandler.DeleteCustomCSS)
		}
	}
}

// registerJobRoutes registers the unattended job endpoints guarded by the
// static JOB_KEY.
func registerJobRoutes(api *gin.RouterGroup, serverHandler *handler.Server, configManager types.ConfigManager) {
	jobs := api.Group("/jobs")
	jobs.Use(middleware.JobAuth(configManager.GetJobConfig()))
	{
		jobs.POST("/daily-migration", serverHandler.RunMigration)
		jobs.POST("/undo-migration", serverHandler.UndoMigration)
		jobs.POST("/auto-sync", serverHandler.ScrapeSync)
	}
}

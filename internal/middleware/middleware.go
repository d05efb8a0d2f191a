// Package middleware provides HTTP middleware for the application
package middleware

import (
	"crypto/subtle"
	"strings"
	"time"

	"satta-board/internal/auth"
	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/response"
	"satta-board/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextKeySession     = "session"
	ContextKeyProfile     = "profile"
	ContextKeyPermissions = "permissions"
)

// Logger creates a request logging middleware
func Logger(config types.LogConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		method := c.Request.Method
		statusCode := c.Writer.Status()

		// Filter health check logs to reduce noise
		if isMonitoringEndpoint(path) {
			if statusCode >= 400 {
				logrus.Warnf("%s %s - %d - %v", method, path, statusCode, latency)
			}
			return
		}

		if statusCode >= 500 {
			logrus.Errorf("%s %s - %d - %v", method, path, statusCode, latency)
		} else if statusCode >= 400 {
			logrus.Warnf("%s %s - %d - %v", method, path, statusCode, latency)
		} else {
			logrus.Infof("%s %s - %d - %v", method, path, statusCode, latency)
		}
	}
}

// CORS creates a CORS middleware with efficient preflight handling
func CORS(config types.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(config.AllowedMethods, ", ")
	allowedHeaders := strings.Join(config.AllowedHeaders, ", ")

	allowedOriginsMap := make(map[string]bool, len(config.AllowedOrigins))
	hasWildcard := false
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			hasWildcard = true
		} else {
			allowedOriginsMap[origin] = true
		}
	}
	if hasWildcard && !config.AllowCredentials {
		allowedOriginsMap = nil
	}
	if config.AllowCredentials && len(config.AllowedOrigins) == 1 && config.AllowedOrigins[0] == "*" {
		logrus.Warn("CORS configuration uses AllowedOrigins=['*'] with AllowCredentials=true; this blocks all credentialed CORS requests. Configure explicit origins instead.")
	}

	return func(c *gin.Context) {
		if !config.Enabled {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")

		if c.Request.Method == "OPTIONS" {
			if isOriginAllowed(origin, hasWildcard, config.AllowCredentials, allowedOriginsMap) {
				setAllowOriginHeader(c, origin, hasWildcard, config.AllowCredentials)
				c.Header("Access-Control-Allow-Methods", allowedMethods)
				c.Header("Access-Control-Allow-Headers", allowedHeaders)
				if config.AllowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Max-Age", "86400")
			}

			c.AbortWithStatus(204)
			return
		}

		if isOriginAllowed(origin, hasWildcard, config.AllowCredentials, allowedOriginsMap) {
			setAllowOriginHeader(c, origin, hasWildcard, config.AllowCredentials)
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			if config.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		c.Next()
	}
}

// isOriginAllowed checks if the origin is allowed based on CORS configuration
func isOriginAllowed(origin string, hasWildcard, allowCredentials bool, allowedOriginsMap map[string]bool) bool {
	if hasWildcard && !allowCredentials {
		return true
	}
	return allowedOriginsMap[origin]
}

// setAllowOriginHeader sets the Access-Control-Allow-Origin header and Vary header if needed
func setAllowOriginHeader(c *gin.Context, origin string, hasWildcard, allowCredentials bool) {
	if hasWildcard && !allowCredentials {
		c.Header("Access-Control-Allow-Origin", "*")
	} else {
		c.Header("Access-Control-Allow-Origin", origin)
		addVaryOriginHeader(c)
	}
}

// addVaryOriginHeader adds "Origin" to the Vary header if not already present
func addVaryOriginHeader(c *gin.Context) {
	vary := c.Writer.Header().Get("Vary")
	if vary == "" {
		c.Header("Vary", "Origin")
		return
	}

	varyHeaders := strings.Split(vary, ",")
	for _, h := range varyHeaders {
		if strings.TrimSpace(h) == "Origin" {
			return
		}
	}

	c.Header("Vary", vary+", Origin")
}

// Auth resolves the bearer session token into a profile and its active
// permission grants. Any failure along the way aborts with 401.
func Auth(sessions *auth.SessionManager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.unauthorized")
			c.Abort()
			return
		}

		session, err := sessions.Resolve(token)
		if err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.session_expired")
			c.Abort()
			return
		}

		var profile models.Profile
		if err := db.Where("user_id = ?", session.UserID).First(&profile).Error; err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.unauthorized")
			c.Abort()
			return
		}
		if !profile.IsActive {
			response.ErrorI18nFromAPIError(c, app_errors.ErrForbidden, "auth.account_disabled")
			c.Abort()
			return
		}

		var grants []models.UserPermission
		if err := db.Where("user_id = ?", profile.UserID).Find(&grants).Error; err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextKeySession, session)
		c.Set(ContextKeyProfile, &profile)
		c.Set(ContextKeyPermissions, auth.ActivePermissions(grants, time.Now()))

		c.Next()
	}
}

// RequirePermission aborts with 403 unless the authenticated profile holds
// an active grant for the permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, ok := PermissionsFromContext(c)
		if !ok || !perms[permission] {
			response.ErrorI18nFromAPIError(c, app_errors.ErrForbidden, "auth.forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated profile's role ranks
// at or above the required role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := ProfileFromContext(c)
		if !ok || !auth.HasRoleOrHigher(profile.Role, role) {
			response.ErrorI18nFromAPIError(c, app_errors.ErrForbidden, "auth.forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// JobAuth guards the unattended job endpoints with a static key compared in
// constant time.
func JobAuth(jobConfig types.JobConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := extractBearerToken(c)

		isValid := jobConfig.Key != "" && key != "" &&
			subtle.ConstantTimeCompare([]byte(key), []byte(jobConfig.Key)) == 1

		if !isValid {
			response.Error(c, app_errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ProfileFromContext returns the authenticated profile set by Auth.
func ProfileFromContext(c *gin.Context) (*models.Profile, bool) {
	v, exists := c.Get(ContextKeyProfile)
	if !exists {
		return nil, false
	}
	profile, ok := v.(*models.Profile)
	return profile, ok
}

// SessionFromContext returns the resolved session set by Auth.
func SessionFromContext(c *gin.Context) (*auth.Session, bool) {
	v, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, false
	}
	session, ok := v.(*auth.Session)
	return session, ok
}

// PermissionsFromContext returns the active permission set from Auth.
func PermissionsFromContext(c *gin.Context) (map[string]bool, bool) {
	v, exists := c.Get(ContextKeyPermissions)
	if !exists {
		return nil, false
	}
	perms, ok := v.(map[string]bool)
	return perms, ok
}

// Recovery creates a recovery middleware with custom error handling
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.Errorf("Panic recovered: %v", recovered)
		response.Error(c, app_errors.ErrInternalServer)
		c.Abort()
	})
}

// RateLimiter creates a simple rate limiting middleware
func RateLimiter(config types.PerformanceConfig) gin.HandlerFunc {
	// Simple semaphore-based rate limiting
	semaphore := make(chan struct{}, config.MaxConcurrentRequests)

	return func(c *gin.Context) {
		select {
		case semaphore <- struct{}{}:
			defer func() { <-semaphore }()
			c.Next()
		default:
			response.Error(c, app_errors.NewAPIError(app_errors.ErrInternalServer, "Too many concurrent requests"))
			c.Abort()
		}
	}
}

// ErrorHandler creates an error handling middleware
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if apiErr, ok := err.(*app_errors.APIError); ok {
				response.Error(c, apiErr)
				return
			}

			logrus.Errorf("Unhandled error: %v", err)
			response.Error(c, app_errors.ErrInternalServer)
		}
	}
}

// isMonitoringEndpoint checks if the path is a monitoring endpoint
func isMonitoringEndpoint(path string) bool {
	monitoringPaths := []string{"/health"}
	for _, monitoringPath := range monitoringPaths {
		if path == monitoringPath {
			return true
		}
	}
	return false
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		const bearerPrefix = "Bearer "
		if strings.HasPrefix(authHeader, bearerPrefix) {
			return authHeader[len(bearerPrefix):]
		}
	}
	return ""
}

// SecurityHeaders creates a middleware to add security-related headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), usb=()")
		c.Header("X-Frame-Options", "SAMEORIGIN")

		c.Next()
	}
}

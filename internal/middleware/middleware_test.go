package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"satta-board/internal/auth"
	"satta-board/internal/i18n"
	"satta-board/internal/models"
	"satta-board/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestJobAuth(t *testing.T) {
	router := gin.New()
	router.GET("/jobs/run", JobAuth(types.JobConfig{Key: "job-secret"}), okHandler)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid key", "Bearer job-secret", http.StatusOK},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", "job-secret", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			w := performRequest(router, http.MethodGet, "/jobs/run", headers)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestJobAuthRejectsEverythingWhenKeyUnset(t *testing.T) {
	router := gin.New()
	router.GET("/jobs/run", JobAuth(types.JobConfig{}), okHandler)

	// An empty configured key must not mean "open access".
	w := performRequest(router, http.MethodGet, "/jobs/run", map[string]string{"Authorization": "Bearer "})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// withIdentity injects an authenticated identity the way Auth would.
func withIdentity(profile *models.Profile, perms map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyProfile, profile)
		c.Set(ContextKeyPermissions, perms)
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	profile := &models.Profile{UserID: "u1", Role: auth.RoleResultOperator, IsActive: true}

	router := gin.New()
	router.GET("/granted",
		withIdentity(profile, map[string]bool{auth.PermManageResults: true}),
		RequirePermission(auth.PermManageResults), okHandler)
	router.GET("/denied",
		withIdentity(profile, map[string]bool{auth.PermManageResults: true}),
		RequirePermission(auth.PermManageUsers), okHandler)
	router.GET("/anonymous", RequirePermission(auth.PermManageResults), okHandler)

	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/granted", nil).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(router, http.MethodGet, "/denied", nil).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(router, http.MethodGet, "/anonymous", nil).Code)
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	admin := &models.Profile{UserID: "u1", Role: auth.RoleAdmin, IsActive: true}
	viewer := &models.Profile{UserID: "u2", Role: auth.RoleViewer, IsActive: true}

	router.GET("/admin", withIdentity(admin, nil), RequireRole(auth.RoleAdmin), okHandler)
	router.GET("/viewer", withIdentity(viewer, nil), RequireRole(auth.RoleAdmin), okHandler)

	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(router, http.MethodGet, "/viewer", nil).Code)
}

func TestCORSPreflightAndOrigins(t *testing.T) {
	config := types.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://panel.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/", okHandler)

	w := performRequest(router, http.MethodOptions, "/", map[string]string{"Origin": "https://panel.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://panel.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = performRequest(router, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/", okHandler)

	w := performRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}

func TestExtractBearerToken(t *testing.T) {
	router := gin.New()
	var got string
	router.GET("/", func(c *gin.Context) {
		got = extractBearerToken(c)
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/", map[string]string{"Authorization": "Bearer abc123"})
	assert.Equal(t, "abc123", got)

	performRequest(router, http.MethodGet, "/", map[string]string{"Authorization": "Token abc123"})
	assert.Empty(t, got)
}

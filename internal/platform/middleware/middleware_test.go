package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), SecurityHeadersMiddleware())
	whoami := func(c *gin.Context) {
		name, _ := GetUsername(c)
		c.String(http.StatusOK, name)
	}
	r.GET("/api", AuthMiddleware(jwtManager), whoami)
	r.GET("/page", PageAuthMiddleware(jwtManager, "/login_page"), whoami)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate("42", "captain")
	require.NoError(t, err)
	r := newTestRouter(jwtManager)

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		status int
		body   string
	}{
		{name: "bearer", path: "/api", header: "Bearer " + token, status: http.StatusOK, body: "captain"},
		{name: "lower-case scheme", path: "/api", header: "bearer " + token, status: http.StatusOK, body: "captain"},
		{name: "cookie", path: "/api", cookie: token, status: http.StatusOK, body: "captain"},
		{name: "missing", path: "/api", status: http.StatusUnauthorized},
		{name: "garbage", path: "/api", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "page with cookie", path: "/page", cookie: token, status: http.StatusOK, body: "captain"},
		{name: "page redirect", path: "/page", status: http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			if tt.status == http.StatusFound {
				assert.Equal(t, "/login_page", w.Header().Get("Location"))
			}
		})
	}
}

func TestAuthMiddleware_RejectsForeignSecret(t *testing.T) {
	other := auth.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate("42", "captain")
	require.NoError(t, err)

	r := newTestRouter(auth.NewJWTManager("test-secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(auth.NewJWTManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}

func TestLoggerMiddleware_RecordsAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate("42", "captain")
	require.NoError(t, err)

	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/api", AuthMiddleware(jwtManager), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/open", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "42", entries[0].ContextMap()["user_id"])
	assert.NotContains(t, entries[1].ContextMap(), "user_id")
}

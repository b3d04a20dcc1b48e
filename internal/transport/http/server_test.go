package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/bootstrap"
	"pinboard/internal/config"
)

func newTestApp() *bootstrap.App {
	return &bootstrap.App{
		Config: &config.Config{
			App: config.AppConfig{
				Name:    "pinboard",
				GinMode: gin.TestMode,
			},
			Auth: config.AuthConfig{JWTSecret: "test-secret"},
		},
		StartedAt: time.Now(),
	}
}

func TestRouteTable(t *testing.T) {
	router := NewRouter(newTestApp())

	registered := map[string]bool{}
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/users/create",
		"PATCH /api/v1/users/verify-account/:userId/:token",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/",
		"GET /api/v1/auth/profile/:userName",
		"PATCH /api/v1/auth/update/:id",
		"POST /api/v1/auth/recover-password",
		"PATCH /api/v1/auth/reset-password/:id/:token",
		"PUT /api/v1/auth/follow/:userId",
		"PUT /api/v1/auth/unfollow/:userId",
		"GET /api/v1/auth/followers/:id",
		"GET /api/v1/auth/following/:id",
		"GET /api/v1/pins/",
		"POST /api/v1/pins/create",
		"GET /api/v1/pins/random-explore",
		"GET /api/v1/pins/followed",
		"GET /api/v1/pins/user/:id",
		"GET /api/v1/pins/liked/:id",
		"GET /api/v1/pins/:id",
		"GET /api/v1/pins/:id/related",
		"PUT /api/v1/pins/like/:id",
		"PUT /api/v1/pins/dislike/:id",
		"PATCH /api/v1/pins/:id/update",
		"DELETE /api/v1/pins/:id",
		"POST /api/v1/comments/:id/add",
		"GET /api/v1/comments/:id",
		"PUT /api/v1/comments/like/:id",
		"PUT /api/v1/comments/dislike/:id",
		"PATCH /api/v1/comments/:id",
		"DELETE /api/v1/comments/delete/:id",
		"GET /api/v1/search/",
		"GET /api/v1/search/tags",
		"DELETE /api/v1/search/:id/tags/:index",
		"POST /api/v1/upload",
		"GET /healthz",
		"GET /metrics",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := NewRouter(newTestApp())

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/pins/"},
		{http.MethodPut, "/api/v1/pins/like/1"},
		{http.MethodPut, "/api/v1/auth/follow/1"},
		{http.MethodPut, "/api/v1/comments/like/1"},
		{http.MethodPost, "/api/v1/upload"},
	}
	for _, route := range protected {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(route.method, route.path, nil)
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

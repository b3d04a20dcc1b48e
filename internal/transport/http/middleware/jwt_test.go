package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/pkg/jwtutil"
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Deserialize(testSecret))
	router.GET("/open", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(200, gin.H{"user_id": id})
	})
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(200, gin.H{"user_id": id})
	})
	return router
}

func TestAnonymousRequestPasses(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidTokenEstablishesIdentity(t *testing.T) {
	router := newTestRouter()

	token, err := jwtutil.GenerateToken(testSecret, jwtutil.PurposeAccess, time.Hour, 7, "maria", "user")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7}`, rec.Body.String())
}

func TestBadSchemeRejected(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Basic abc")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNonAccessTokenRejected(t *testing.T) {
	router := newTestRouter()

	// verification and reset tokens must never authenticate a request
	token, err := jwtutil.GenerateToken(testSecret, jwtutil.PurposeVerify, time.Hour, 7, "maria", "user")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

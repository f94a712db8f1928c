package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fittrack/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789abcdef"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware(testSecret))
	router.GET("/whoami", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestMiddleware(t *testing.T) {
	router := setupRouter(t)

	t.Run("valid token passes and sets the user ID", func(t *testing.T) {
		token, err := jwt.GenerateToken(42, testSecret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":42}`, rec.Body.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := jwt.GenerateToken(42, "some-other-secret-0123456789abcdef")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

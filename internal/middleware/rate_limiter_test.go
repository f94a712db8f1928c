package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowUser(t *testing.T) {
	rl := NewRateLimiter(3, 100, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowUser(1), "request %d should be allowed", i+1)
	}
	assert.False(t, rl.AllowUser(1))

	// Other users have their own budget.
	assert.True(t, rl.AllowUser(2))
}

func TestRateLimiter_AllowIP(t *testing.T) {
	rl := NewRateLimiter(100, 2, time.Minute)

	assert.True(t, rl.AllowIP("10.0.0.1"))
	assert.True(t, rl.AllowIP("10.0.0.1"))
	assert.False(t, rl.AllowIP("10.0.0.1"))
	assert.True(t, rl.AllowIP("10.0.0.2"))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 100, 20*time.Millisecond)

	assert.True(t, rl.AllowUser(1))
	assert.False(t, rl.AllowUser(1))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.AllowUser(1))
}

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limits by user once identity is set", func(t *testing.T) {
		rl := NewRateLimiter(1, 100, time.Minute)

		router := gin.New()
		router.Use(func(c *gin.Context) { c.Set("userID", uint(7)) }, rl.Handler())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("limits anonymous requests by IP", func(t *testing.T) {
		rl := NewRateLimiter(100, 1, time.Minute)

		router := gin.New()
		router.Use(rl.Handler())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}

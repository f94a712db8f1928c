package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple in-memory fixed-window rate limiter,
// keyed per authenticated user and per client IP.
type RateLimiter struct {
	userLimits map[uint]*windowCount
	ipLimits   map[string]*windowCount
	mu         sync.Mutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
}

type windowCount struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop.
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*windowCount),
		ipLimits:        make(map[string]*windowCount),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
	}

	go rl.cleanup()

	return rl
}

// AllowUser reports whether the user is within their window budget and
// counts the request.
func (rl *RateLimiter) AllowUser(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.userLimits[userID]
	if !exists || now.After(limit.resetTime) {
		rl.userLimits[userID] = &windowCount{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.userMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// AllowIP reports whether the IP is within its window budget and counts
// the request.
func (rl *RateLimiter) AllowIP(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &windowCount{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for id, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, id)
			}
		}
		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Handler returns the gin middleware. IP limits apply to every request;
// user limits apply once auth middleware has set userID.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.AllowIP(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		if userID, exists := c.Get("userID"); exists {
			if id, ok := userID.(uint); ok && !rl.AllowUser(id) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
				return
			}
		}

		c.Next()
	}
}

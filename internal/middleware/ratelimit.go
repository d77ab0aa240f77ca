package middleware

import (
	"net/http"
	"simhealth/pkg/utils"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DeviceIDHeader = "X-Device-ID"

	limiterIdleTTL = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a new RateLimiter.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// Sweep drops buckets that have been idle longer than ttl.
func (rl *RateLimiter) Sweep(ttl time.Duration) int {
	cutoff := rl.now().Add(-ttl)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) runSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Sweep(limiterIdleTTL)
		case <-stop:
			return
		}
	}
}

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByDevice charges firmware requests to the device that identifies itself,
// falling back to the client IP.
func ByDevice(c *gin.Context) string {
	if id := utils.SanitizeIdentifier(c.GetHeader(DeviceIDHeader)); id != "" {
		return "device:" + id
	}
	return c.ClientIP()
}

// RateLimitMiddleware creates a rate limiting middleware. The sweeper stops when stop is closed.
func RateLimitMiddleware(rps float64, burst int, key KeyFunc, stop <-chan struct{}) gin.HandlerFunc {
	limiter := NewRateLimiter(rps, burst)
	if stop != nil {
		go limiter.runSweeper(stop)
	}
	if key == nil {
		key = ByClientIP
	}

	return func(c *gin.Context) {
		k := key(c)
		if !limiter.Allow(k) {
			RequestLogger(c).Warn("Rate limit exceeded",
				zap.String("key", k),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)

			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

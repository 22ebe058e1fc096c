package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	rate  rate.Limit
	burst int
	ips   map[string]*visitor
	swept time.Time
	mu    sync.Mutex
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(perSecond),
		burst: burst,
		ips:   make(map[string]*visitor),
	}
}

// NewStrictRateLimiter is used for login and register: 5 attempts per minute.
func NewStrictRateLimiter() gin.HandlerFunc {
	return (&RateLimiter{
		rate:  rate.Every(12 * time.Second),
		burst: 5,
		ips:   make(map[string]*visitor),
	}).RateLimit()
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.swept) > limiterIdleTTL {
		for key, v := range rl.ips {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(rl.ips, key)
			}
		}
		rl.swept = now
	}

	v, ok := rl.ips[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "too many requests, please slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

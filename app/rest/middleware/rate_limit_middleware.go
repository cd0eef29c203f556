package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter applies per-IP request limits, stricter on credential
// endpoints. Each IP gets an independent limiter per bucket, so a
// burst of catalog reads never loosens the login budget.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.RWMutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type bucket struct {
	name  string
	limit rate.Limit
	burst int
}

var (
	loginBucket    = bucket{name: "login", limit: rate.Every(time.Second), burst: 5}
	registerBucket = bucket{name: "register", limit: rate.Every(5 * time.Second), burst: 3}
	defaultBucket  = bucket{name: "default", limit: rate.Every(50 * time.Millisecond), burst: 40}
)

func bucketFor(path string) bucket {
	switch {
	case strings.Contains(path, "/auth/login"):
		return loginBucket
	case strings.Contains(path, "/auth/register"):
		return registerBucket
	default:
		return defaultBucket
	}
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}

	go rl.cleanupVisitors()
	return rl
}

// RateLimit returns the limiting middleware
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP(), bucketFor(c.Request().URL.Path)) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"message": "Too many requests",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip string, b bucket) bool {
	key := ip + ":" + b.name

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(b.limit, b.burst)}
		rl.visitors[key] = v
	}

	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}

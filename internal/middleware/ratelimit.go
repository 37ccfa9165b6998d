package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/leadsite/api/internal/config"
	"github.com/octobees/leadsite/api/internal/ratelimit"
)

// IntakeRateLimiter guards the public lead intake with the per-client
// sliding window. The key is the client IP as echo resolves it, so requests
// behind a proxy are counted per originating address.
func IntakeRateLimiter(limiter *ratelimit.SlidingWindow) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]any{"ok": false, "message": "Too many requests"})
			}
			return next(c)
		}
	}
}

// ImageRateLimiter applies a process-wide token bucket in front of the
// image-search proxy so a burst of page loads cannot exhaust the upstream
// API quota.
func ImageRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			allowed := limiter.Allow()
			mu.Unlock()

			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]any{"ok": false, "message": "Too many requests"})
			}

			return next(c)
		}
	}
}

package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes a concise line for each HTTP request. Errors are resolved
// into their response before logging so the status is the one sent.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			log.Printf("request_id=%s ip=%s method=%s path=%s status=%d latency=%s",
				rid, c.RealIP(), c.Request().Method, c.Request().URL.Path, c.Response().Status, latency)

			return err
		}
	}
}

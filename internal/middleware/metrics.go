package middleware

import (
	"time"

	"yatstats/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latency by route template. Handler
// errors are written here so the recorded status is the one sent.
func Metrics(m *metrics.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	metricspkg "github.com/octobees/identity-cache/api/internal/metrics"
)

// Metrics records a latency observation for every request.
func Metrics(m *metricspkg.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			m.ObserveRequest(c.Request().Method, route, strconv.Itoa(c.Response().Status), time.Since(start))

			return err
		}
	}
}

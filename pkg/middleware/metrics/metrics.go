package metricsmw

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cellar_society/pkg/metrics"
)

func Middleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = 500
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
			m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

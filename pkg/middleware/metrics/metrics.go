// Package metrics provides HTTP metrics recording middleware.
package metrics

import (
	"time"

	"github.com/atemporal/shop-api/pkg/observability/metrics"
	"github.com/atemporal/shop-api/pkg/server/router"
)

// Metrics creates middleware that records request metrics on the given
// registry: duration histogram and counter by method/path/status, plus an
// in-flight gauge.
func Metrics(registry *metrics.Registry) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			registry.IncInFlight()
			defer registry.DecInFlight()

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			registry.RecordHTTPRequest(
				c.Request().Method,
				c.Request().URL.Path,
				c.Response().Status(),
				duration,
			)

			return err
		}
	}
}

// Package logging provides HTTP request logging middleware.
package logging

import (
	"net"
	"time"

	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
)

// Config configures the request logging middleware.
type Config struct {
	// SkipPaths lists request paths that are not logged (e.g. /healthcheck).
	SkipPaths []string
}

// Logging creates middleware that logs HTTP requests with structured fields:
// request_id, method, path, status, duration_ms and remote_addr.
// Server errors are logged at error level, everything else at info level.
func Logging(log logger.Logger, cfg Config) router.MiddlewareFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			path := c.Request().URL.Path
			if _, ok := skip[path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			status := c.Response().Status()
			remoteAddr := c.Request().RemoteAddr
			if host, _, splitErr := net.SplitHostPort(remoteAddr); splitErr == nil {
				remoteAddr = host
			}

			fields := []any{
				"request_id", logger.RequestIDFromContext(c.Request().Context()),
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", float64(duration.Microseconds()) / 1000.0,
				"remote_addr", remoteAddr,
			}
			if err != nil {
				fields = append(fields, "error", err.Error())
			}

			if status >= 500 || err != nil {
				log.Error("http request", fields...)
			} else {
				log.Info("http request", fields...)
			}

			return err
		}
	}
}

package server

import (
	"github.com/atemporal/shop-api/pkg/config"
	"github.com/atemporal/shop-api/pkg/middleware/cors"
	"github.com/atemporal/shop-api/pkg/middleware/logging"
	metricsmiddleware "github.com/atemporal/shop-api/pkg/middleware/metrics"
	"github.com/atemporal/shop-api/pkg/middleware/recovery"
	"github.com/atemporal/shop-api/pkg/middleware/requestid"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/observability/metrics"
	"github.com/atemporal/shop-api/pkg/server/router"
)

// PublicAPIServer wraps Server for application traffic with the standard
// middleware stack applied:
//
//  1. Request ID - generates/extracts request IDs for correlation
//  2. Logging - logs HTTP requests with structured data
//  3. Recovery - catches panics and returns 500 errors
//  4. CORS - cross-origin headers and preflight handling
//  5. Metrics - records Prometheus metrics for requests (when enabled)
type PublicAPIServer struct {
	*Server
	metrics *metrics.Registry
}

// NewPublicAPIServer creates a PublicAPIServer. The metrics registry may be
// nil when metrics are disabled.
func NewPublicAPIServer(
	httpCfg config.HTTPConfig,
	corsCfg config.CORSConfig,
	r router.Router,
	registry *metrics.Registry,
	log logger.Logger,
) *PublicAPIServer {
	r.Use(requestid.RequestID())
	r.Use(logging.Logging(log, logging.Config{SkipPaths: []string{"/healthcheck", "/metrics"}}))
	r.Use(recovery.Recovery(log))
	r.Use(cors.Middleware(cors.Config{
		Enabled:          corsCfg.Enabled,
		AllowAllOrigins:  corsCfg.AllowAllOrigins,
		AllowOrigins:     corsCfg.AllowOrigins,
		AllowMethods:     corsCfg.AllowMethods,
		AllowHeaders:     corsCfg.AllowHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	}))
	if registry != nil {
		r.Use(metricsmiddleware.Metrics(registry))
	}

	srv := NewServer(Config{
		Port:         httpCfg.Port,
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
		IdleTimeout:  httpCfg.IdleTimeout,
	}, r, log)

	return &PublicAPIServer{Server: srv, metrics: registry}
}

// Metrics returns the metrics registry, or nil when metrics are disabled.
func (s *PublicAPIServer) Metrics() *metrics.Registry {
	return s.metrics
}

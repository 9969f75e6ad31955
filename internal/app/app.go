// Package app wires configuration, storage, routing, and the HTTP server
// into a runnable service. Each service binary supplies its resource
// registration and reuses everything else.
package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/atemporal/shop-api/internal/resource"
	"github.com/atemporal/shop-api/pkg/config"
	"github.com/atemporal/shop-api/pkg/health"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/observability/metrics"
	"github.com/atemporal/shop-api/pkg/server"
	"github.com/atemporal/shop-api/pkg/server/router"
	"github.com/atemporal/shop-api/pkg/server/router/factory"
	"github.com/atemporal/shop-api/pkg/store/mongodb"
)

// RegisterFunc mounts a service's resource routes on the router.
type RegisterFunc func(r router.Router, exec resource.Executor, log logger.Logger)

// Options describes one service binary.
type Options struct {
	// Name is the service name ("categories", "orders", ...).
	Name string

	// Description is the one-line help text for the CLI.
	Description string

	// Register mounts the service's routes.
	Register RegisterFunc
}

// Run starts the service and blocks until ctx is cancelled, SIGINT or
// SIGTERM is received, or the server fails.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adapter, err := mongodb.NewAdapter(mongodb.Config{
		Host:                   cfg.Database.Host,
		Port:                   cfg.Database.Port,
		Username:               cfg.Database.Username,
		Password:               cfg.Database.Password,
		AuthSource:             cfg.Database.AuthSource,
		AuthMechanism:          cfg.Database.AuthMechanism,
		Database:               cfg.Database.DatabaseName,
		ServerSelectionTimeout: cfg.Database.ServerSelectionTimeout,
		ConnectTimeout:         cfg.Database.ConnectTimeout,
		OperationTimeout:       cfg.Database.OperationTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := adapter.Close(); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	healthRegistry := health.NewRegistry()
	healthRegistry.RegisterFunc("mongodb", adapter.HealthCheck)

	var metricsRegistry *metrics.Registry
	if cfg.Observability.MetricsEnabled {
		metricsRegistry = metrics.NewRegistry()
	}

	r, err := factory.NewRouter(cfg.RouterType)
	if err != nil {
		return err
	}

	// Middleware must be in place before routes are mounted: route handlers
	// capture the global chain at registration time.
	srv := server.NewPublicAPIServer(cfg.HTTP, cfg.CORS, r, metricsRegistry, log)

	RegisterRoutes(r, healthRegistry, metricsRegistry)
	opts.Register(r, resource.NewMongoExecutor(adapter), log)

	log.Info("service starting",
		"service", opts.Name,
		"port", cfg.HTTP.Port,
		"router", cfg.RouterType,
	)
	return srv.Start(ctx)
}

// RegisterRoutes mounts the operational endpoints shared by every service.
// The metrics registry may be nil when metrics are disabled.
func RegisterRoutes(r router.Router, healthRegistry *health.Registry, metricsRegistry *metrics.Registry) {
	r.GET("/healthcheck", func(c router.Context) error {
		result := healthRegistry.Check(c.Request().Context())
		if result.Status != health.StatusHealthy {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "Down",
				"checks": result.Checks,
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "Up"})
	})

	if metricsRegistry != nil {
		handler := metricsRegistry.Handler()
		r.GET("/metrics", func(c router.Context) error {
			handler.ServeHTTP(c.Response(), c.Request())
			return nil
		})
	}
}

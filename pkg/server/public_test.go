package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atemporal/shop-api/pkg/config"
	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/observability/metrics"
	"github.com/atemporal/shop-api/pkg/server/router"
	ginadapter "github.com/atemporal/shop-api/pkg/server/router/gin"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                      {}
func (nopLogger) Info(string, ...any)                       {}
func (nopLogger) Warn(string, ...any)                       {}
func (nopLogger) Error(string, ...any)                      {}
func (nopLogger) With(...any) logger.Logger                 { return nopLogger{} }
func (nopLogger) WithContext(context.Context) logger.Logger { return nopLogger{} }

func TestNewPublicAPIServer_MiddlewareStack(t *testing.T) {
	defaults := config.DefaultConfig()
	r := ginadapter.NewRouter()
	srv := NewPublicAPIServer(defaults.HTTP, defaults.CORS, r, metrics.NewRegistry(), nopLogger{})

	srv.Router().GET("/panic", func(c router.Context) error {
		panic("boom")
	})
	srv.Router().GET("/ok", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "Up"})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header from middleware stack")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic status = %d, want 500", rec.Code)
	}
}

func TestNewPublicAPIServer_CORSPreflight(t *testing.T) {
	defaults := config.DefaultConfig()
	r := ginadapter.NewRouter()
	srv := NewPublicAPIServer(defaults.HTTP, defaults.CORS, r, nil, nopLogger{})

	srv.Router().POST("/api/v1/categories", func(c router.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"name": "Tech"})
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/categories", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected Access-Control-Allow-Origin header on preflight response")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected Access-Control-Allow-Methods header on preflight response")
	}
}

func TestNewPublicAPIServer_NilMetricsRegistry(t *testing.T) {
	defaults := config.DefaultConfig()
	srv := NewPublicAPIServer(defaults.HTTP, defaults.CORS, ginadapter.NewRouter(), nil, nopLogger{})
	if srv.Metrics() != nil {
		t.Fatal("expected nil metrics registry")
	}
}

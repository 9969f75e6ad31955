package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	obsmetrics "github.com/atemporal/shop-api/pkg/observability/metrics"
	"github.com/atemporal/shop-api/pkg/server/router"
	ginadapter "github.com/atemporal/shop-api/pkg/server/router/gin"
)

func TestMetrics_RecordsRequests(t *testing.T) {
	registry := obsmetrics.NewRegistry()
	r := ginadapter.NewRouter()
	r.Use(Metrics(registry))
	r.GET("/api/v1/products", func(c router.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	metricsRec := httptest.NewRecorder()
	registry.Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := metricsRec.Body.String()
	if !strings.Contains(body, `path="/api/v1/products"`) {
		t.Fatalf("expected recorded request in metrics output, got:\n%s", body)
	}
}

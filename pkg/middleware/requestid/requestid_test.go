package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
	ginadapter "github.com/atemporal/shop-api/pkg/server/router/gin"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	r := ginadapter.NewRouter()
	r.Use(RequestID())

	var seen string
	r.GET("/x", func(c router.Context) error {
		seen = logger.RequestIDFromContext(c.Request().Context())
		return c.JSON(http.StatusOK, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" {
		t.Fatal("expected a generated request id in the request context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("response header %q = %q, want %q", RequestIDHeader, got, seen)
	}
}

func TestRequestID_PreservesExistingHeader(t *testing.T) {
	r := ginadapter.NewRouter()
	r.Use(RequestID())
	r.GET("/x", func(c router.Context) error {
		return c.JSON(http.StatusOK, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied" {
		t.Fatalf("response header = %q, want client-supplied", got)
	}
}

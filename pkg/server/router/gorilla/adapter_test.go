package gorilla

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atemporal/shop-api/pkg/server/router"
)

func TestToMuxPath(t *testing.T) {
	cases := map[string]string{
		"/api/v1/categories":     "/api/v1/categories",
		"/api/v1/categories/:id": "/api/v1/categories/{id}",
		"/:a/:b":                 "/{a}/{b}",
	}
	for in, want := range cases {
		if got := toMuxPath(in); got != want {
			t.Fatalf("toMuxPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGorillaRouter_RoutesAndParams(t *testing.T) {
	r := NewRouter()
	r.GET("/items/:id", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"7"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGorillaRouter_MethodRestriction(t *testing.T) {
	r := NewRouter()
	r.POST("/items", func(c router.Context) error {
		return c.JSON(http.StatusCreated, nil)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	if rec.Code == http.StatusCreated {
		t.Fatalf("GET must not reach the POST handler, got %d", rec.Code)
	}
}

func TestGorillaContext_Store(t *testing.T) {
	c := newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if v := c.Get("missing"); v != nil {
		t.Fatalf("expected nil for missing key, got %v", v)
	}
	c.Set("k", 42)
	if v := c.Get("k"); v != 42 {
		t.Fatalf("Get(k) = %v, want 42", v)
	}
}

func TestGorillaRouter_AutoOptionsRoute(t *testing.T) {
	r := NewRouter()
	r.PUT("/things/:id", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})
	r.DELETE("/things/:id", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})

	var sawOptions bool
	r.Use(func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if c.Request().Method == http.MethodOptions {
				sawOptions = true
			}
			return next(c)
		}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/things/42", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if !sawOptions {
		t.Fatal("expected global middleware to run for the OPTIONS route")
	}
}

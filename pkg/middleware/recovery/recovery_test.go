package recovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atemporal/shop-api/pkg/observability/logger"
	"github.com/atemporal/shop-api/pkg/server/router"
	ginadapter "github.com/atemporal/shop-api/pkg/server/router/gin"
)

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(msg string, _ ...any) {
	l.errors = append(l.errors, msg)
}
func (l *recordingLogger) With(...any) logger.Logger                 { return l }
func (l *recordingLogger) WithContext(context.Context) logger.Logger { return l }

func TestRecovery_CatchesPanic(t *testing.T) {
	log := &recordingLogger{}
	r := ginadapter.NewRouter()
	r.Use(Recovery(log))
	r.GET("/boom", func(c router.Context) error {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal_server_error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(log.errors) == 0 {
		t.Fatal("expected the panic to be logged")
	}
}

func TestRecovery_PassesThrough(t *testing.T) {
	r := ginadapter.NewRouter()
	r.Use(Recovery(&recordingLogger{}))
	r.GET("/ok", func(c router.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "Up"})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

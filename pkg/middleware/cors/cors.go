// Package cors provides CORS middleware.
package cors

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atemporal/shop-api/pkg/server/router"
)

// Config configures CORS middleware behavior.
type Config struct {
	Enabled bool

	AllowAllOrigins bool
	AllowOrigins    []string

	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultConfig returns CORS defaults: enabled, any origin, the CRUD verbs.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}
}

// Middleware returns a router middleware implementing CORS, including
// preflight handling for OPTIONS requests.
func Middleware(cfg Config) router.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !cfg.Enabled {
				return next(c)
			}

			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")
			if origin == "" {
				return next(c)
			}

			if !cfg.originAllowed(allowed, origin) {
				if isPreflight(req) {
					res.WriteHeader(http.StatusForbidden)
					return nil
				}
				return next(c)
			}

			header := res.Header()
			header.Add("Vary", "Origin")
			if cfg.AllowAllOrigins && !cfg.AllowCredentials {
				header.Set("Access-Control-Allow-Origin", "*")
			} else {
				header.Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.AllowCredentials {
				header.Set("Access-Control-Allow-Credentials", "true")
			}

			if isPreflight(req) {
				header.Add("Vary", "Access-Control-Request-Method")
				header.Add("Vary", "Access-Control-Request-Headers")
				if len(cfg.AllowMethods) > 0 {
					header.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
				}
				if len(cfg.AllowHeaders) > 0 {
					header.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
				}
				if cfg.MaxAge > 0 {
					header.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
				}
				res.WriteHeader(http.StatusNoContent)
				return nil
			}

			return next(c)
		}
	}
}

func (cfg Config) originAllowed(allowed map[string]struct{}, origin string) bool {
	if cfg.AllowAllOrigins {
		return true
	}
	_, ok := allowed[strings.ToLower(origin)]
	return ok
}

func isPreflight(req *http.Request) bool {
	return req.Method == http.MethodOptions &&
		req.Header.Get("Access-Control-Request-Method") != ""
}

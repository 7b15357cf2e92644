package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsAllowHeaders = []string{"Origin", "Content-Type", "X-Request-Id", "X-Client-Type"}

// CORSMiddleware allows the configured origins. A "*" entry allows any origin.
// extraHeaders are added to the allowed request headers, e.g. a custom
// photographer header name.
func CORSMiddleware(origins []string, extraHeaders ...string) gin.HandlerFunc {
	return cors.New(corsConfig(origins, extraHeaders...))
}

func corsConfig(origins []string, extraHeaders ...string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			break
		}
		if o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}

	seen := map[string]bool{}
	for _, h := range append(append([]string{}, corsAllowHeaders...), extraHeaders...) {
		key := http.CanonicalHeaderKey(strings.TrimSpace(h))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		cfg.AllowHeaders = append(cfg.AllowHeaders, key)
	}
	return cfg
}

package middleware

import (
	"strings"

	"github.com/go-chi/cors"

	"github.com/heartmarshall/englishmaster-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for
// the configured origins, including preflight OPTIONS requests.
func CORS(cfg config.CORSConfig) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   splitList(cfg.AllowedOrigins),
		AllowedMethods:   splitList(cfg.AllowedMethods),
		AllowedHeaders:   splitList(cfg.AllowedHeaders),
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

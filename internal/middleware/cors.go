package middleware

import (
	"net/http"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// CORS answers preflight requests and adds CORS headers for allowed origins.
// A "*" entry allows any origin; the request origin is echoed back so that
// credentials keep working.
func CORS(cfg config.CORSSettings) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; !ok && !allowAll {
				// not ours to answer
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(constants.HeaderAccessControlOrigin, origin)
			w.Header().Add(constants.HeaderVary, constants.HeaderOrigin)
			if cfg.AllowCredentials {
				w.Header().Set(constants.HeaderAccessControlCreds, "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(constants.HeaderAccessControlMethods, constants.CORSAllowedMethods)
			w.Header().Set(constants.HeaderAccessControlHeaders, constants.CORSAllowedHeaders)
			w.Header().Set(constants.HeaderAccessControlMaxAge, constants.CORSMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

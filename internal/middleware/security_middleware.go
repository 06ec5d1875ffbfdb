package middleware

import (
	"math"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// RateLimiter decides whether a client may make another request in a category.
type RateLimiter interface {
	Allow(clientID, category string) (bool, time.Duration)
}

// RateLimit is middleware that limits the rate of requests from clients.
// Rejected requests get a 429 with a Retry-After hint.
func RateLimit(limiter RateLimiter, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptedPath(r.URL.Path) || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			allowed, retryAfter := limiter.Allow(clientIP, category)
			if !allowed {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Msg("Request rejected by rate limit")

				utils.TooManyRequests(w, retryAfterSeconds(retryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds up so that clients never retry too early.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// getClientIP returns the host part of the peer address. Proxy headers are
// only honoured through chi's RealIP, which the router installs when the
// server is configured to trust its proxy.
func getClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func isExemptedPath(path string) bool {
	return path == constants.HealthPath
}

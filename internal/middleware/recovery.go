package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// let the server abort the connection as usual
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				utils.LogPanic(rec, debug.Stack())
				log.Error().
					Str(constants.RequestIDContextKey, chimiddleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Request aborted by panic")

				utils.InternalServerError(w, nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

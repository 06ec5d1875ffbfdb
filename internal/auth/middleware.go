// Package auth provides password hashing, token issuance and the
// authentication middleware for the annotation API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information.
const (
	UserIDContextKey    ContextKey = constants.UserIDContextKey
	UsernameContextKey  ContextKey = constants.UsernameContextKey
	SessionIDContextKey ContextKey = constants.SessionIDContextKey
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   int64
	Username string
	JWTID    string
}

// SessionValidator reports whether the session behind a token is still live.
type SessionValidator interface {
	IsValidSession(ctx context.Context, jwtID string) (bool, error)
}

// AuthProvider defines methods for different authentication mechanisms.
type AuthProvider interface {
	Authenticate(r *http.Request) (*Identity, error)
}

// JWTAuthProvider implements bearer token authentication backed by server-side sessions.
// A token is accepted only while its session row exists and has not expired, so
// logging out revokes it immediately.
type JWTAuthProvider struct {
	jwtService JWTValidator
	sessions   SessionValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider
func NewJWTAuthProvider(jwtService JWTValidator, sessions SessionValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Authenticate extracts and validates the bearer token of r.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (*Identity, error) {
	token, err := BearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	if p.sessions != nil {
		valid, err := p.sessions.IsValidSession(r.Context(), claims.ID)
		if err != nil {
			return nil, utils.NewInternalServerError(err)
		}
		if !valid {
			return nil, utils.NewInvalidTokenError()
		}
	}

	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		JWTID:    claims.ID,
	}, nil
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return "", utils.NewUnauthorizedError(constants.MsgAuthRequired)
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerTokenPrefix))
	if token == "" {
		return "", utils.NewUnauthorizedError(constants.MsgAuthRequired)
	}
	return token, nil
}

// RequireAuth is a middleware that rejects requests no provider can authenticate.
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())

			var lastErr error = utils.NewUnauthorizedError(constants.MsgAuthRequired)
			for _, provider := range providers {
				identity, err := provider.Authenticate(r)
				if err != nil {
					lastErr = err
					continue
				}

				log.Debug().
					Int64("user_id", identity.UserID).
					Str("username", identity.Username).
					Str("request_id", requestID).
					Str("path", r.URL.Path).
					Msg("User authenticated")

				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
				return
			}

			log.Info().
				Err(lastErr).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Authentication failed")

			var appErr *utils.AppError
			if errors.As(lastErr, &appErr) {
				utils.ErrorFromAppError(w, appErr)
				return
			}
			utils.Unauthorized(w, constants.MsgAuthRequired)
		})
	}
}

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDContextKey, identity.UserID)
	ctx = context.WithValue(ctx, UsernameContextKey, identity.Username)
	return context.WithValue(ctx, SessionIDContextKey, identity.JWTID)
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetUsername extracts the username from the request context.
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(UsernameContextKey).(string)
	return username, ok
}

// GetJWTID extracts the session's JWT ID from the request context.
func GetJWTID(r *http.Request) (string, bool) {
	jwtID, ok := r.Context().Value(SessionIDContextKey).(string)
	return jwtID, ok
}

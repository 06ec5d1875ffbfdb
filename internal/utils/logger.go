package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// redactedValue replaces sensitive query arguments in logs.
const redactedValue = "[REDACTED]"

// InitLogger initializes the global zerolog logger with the given configuration.
// Console output is used in development when the format is "console"; JSON otherwise.
func InitLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = NewLogger(cfg, os.Stdout)

	log.Info().Str("level", level.String()).Msg("Logger initialized")
}

// NewLogger builds a logger writing to out with the application fields attached.
func NewLogger(cfg *config.AppConfig, out io.Writer) zerolog.Logger {
	output := out
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()
}

// LogHTTPRequest logs a completed HTTP request. Health checks are only logged at debug level.
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	if path == constants.HealthPath && zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	event := log.Info()
	switch {
	case statusCode >= 500:
		event = log.Error()
	case statusCode >= 400:
		event = log.Warn()
	case path == constants.HealthPath:
		event = log.Debug()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogError logs an error with additional context fields.
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a recovered panic with its stack trace.
func LogPanic(recovered interface{}, stack []byte) {
	log.Error().
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}

// LogDBQuery logs a database query with its duration. Arguments of queries
// touching credentials are redacted; slow queries are logged at warn level.
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	lowered := strings.ToLower(query)
	sensitive := strings.Contains(lowered, "password_hash") ||
		strings.Contains(lowered, "salt") ||
		strings.Contains(lowered, "jwt_id")

	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		if _, ok := arg.(string); ok && sensitive {
			safeArgs[i] = redactedValue
			continue
		}
		safeArgs[i] = arg
	}

	event := log.Debug()
	switch {
	case err != nil:
		event = log.Error().Err(err)
	case duration > constants.DBSlowQueryThreshold:
		event = log.Warn().Bool("slow", true)
	}

	event.
		Str("query", compactQuery(query)).
		Interface("args", safeArgs).
		Dur("duration", duration).
		Msg("Database query executed")
}

// compactQuery collapses whitespace so multi-line SQL logs on one line.
func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// LogAuth logs an authentication event. Passwords and tokens are never passed here.
func LogAuth(event string, userID, username string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("event", event).
		Str(constants.UserIDContextKey, userID).
		Str(constants.UsernameContextKey, username).
		Bool("success", success)

	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg("Authentication event")
}

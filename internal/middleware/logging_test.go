package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/middleware"
)

func TestRequestLogger(t *testing.T) {
	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = original }()

	handler := chimiddleware.RequestID(middleware.RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, constants.BotsPath, nil)
	req.Header.Set(constants.HeaderXRequestID, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "req-42", entry[constants.RequestIDContextKey])
	assert.Equal(t, constants.BotsPath, entry["path"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = original }()

	handler := middleware.RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, constants.BotsPath, nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

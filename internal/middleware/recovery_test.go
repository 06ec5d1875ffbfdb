package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/middleware"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.Handler
		expectedStatus int
		expectedBody   string
		expectLog      bool
	}{
		{
			name: "No panic occurs",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				if _, err := w.Write([]byte("Success")); err != nil {
					t.Fatalf("failed to write response: %v", err)
				}
			}),
			expectedStatus: http.StatusOK,
			expectedBody:   "Success",
		},
		{
			name: "Panic with error",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(errors.New("test error"))
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":{"code":"internal_error","message":"An internal server error occurred"}}`,
			expectLog:      true,
		},
		{
			name: "Panic with string",
			handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			}),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":{"code":"internal_error","message":"An internal server error occurred"}}`,
			expectLog:      true,
		},
	}

	var logBuf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logBuf)
	defer func() { log.Logger = original }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf.Reset()

			rr := httptest.NewRecorder()
			middleware.Recovery()(tt.handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tt.expectedBody {
				t.Errorf("Expected body %q, got %q", tt.expectedBody, got)
			}
			if tt.expectLog && !strings.Contains(logBuf.String(), "Panic recovered") {
				t.Errorf("Expected panic to be logged, got %q", logBuf.String())
			}
		})
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	handler := middleware.Recovery()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("Expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
}

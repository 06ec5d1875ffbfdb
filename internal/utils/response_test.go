package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.JSON(rec, http.StatusCreated, map[string]interface{}{"message": "Bot created successfully", "bot_id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Bot created successfully", data["message"])
	assert.Equal(t, float64(7), data["bot_id"])
}

func TestErrorFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *utils.AppError
		wantStatus int
		wantCode   string
	}{
		{"not found", utils.NewNotFoundMessage("Dataset not found for this bot"), http.StatusNotFound, "not_found"},
		{"validation", utils.NewValidationError("sentence", "This field is required"), http.StatusBadRequest, "validation_error"},
		{"conflict", utils.NewConflictError(http.StatusBadRequest, "Username already exists"), http.StatusBadRequest, "conflict"},
		{"credentials", utils.NewInvalidCredentialsError(), http.StatusUnauthorized, "invalid_credentials"},
		{"internal", utils.NewDetailedInternalError("Error during annotation", assert.AnError), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			utils.ErrorFromAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, false, body["success"])
			errInfo := body["error"].(map[string]interface{})
			assert.Equal(t, tt.wantCode, errInfo["code"])
			assert.Equal(t, tt.err.Message, errInfo["message"])
		})
	}
}

func TestErrorFromAppErrorIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.ErrorFromAppError(rec, utils.NewValidationErrorWithDetails("Multiple validation errors", map[string]string{
		"username": "This field is required",
		"password": "This field is required",
	}))

	body := decodeResponse(t, rec)
	details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Len(t, details, 2)
}

func TestErrorFromNilAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.ErrorFromAppError(rec, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSendJSONMarshalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.SendJSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate response")
}

func TestHelperResponses(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", func(w http.ResponseWriter) { utils.Unauthorized(w, "") }, http.StatusUnauthorized, "unauthorized"},
		{"not found", func(w http.ResponseWriter) { utils.NotFound(w, "") }, http.StatusNotFound, "not_found"},
		{"method not allowed", utils.MethodNotAllowed, http.StatusMethodNotAllowed, "method_not_allowed"},
		{"too many requests", func(w http.ResponseWriter) { utils.TooManyRequests(w, 2) }, http.StatusTooManyRequests, "too_many_requests"},
		{"internal", func(w http.ResponseWriter) { utils.InternalServerError(w, assert.AnError) }, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, tt.wantCode, body["error"].(map[string]interface{})["code"])
		})
	}
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.TooManyRequests(rec, 3)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))
}

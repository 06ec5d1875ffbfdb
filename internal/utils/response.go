package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Response is the standard envelope for every API response.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
}

// ErrorInfo carries a machine-readable code and a human-readable message.
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a successful JSON response wrapped in the standard envelope.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// Error sends an error response wrapped in the standard envelope.
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: constants.ResponseFailure,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError converts an AppError to the standard error response.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	if err == nil {
		InternalServerError(w, errors.New("nil application error"))
		return
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err.Err).Str("dev_info", err.DevInfo).Msg(err.Message)
	}

	var details map[string]string
	if err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}
	for k, v := range err.Details {
		if details == nil {
			details = make(map[string]string, len(err.Details))
		}
		if s, ok := v.(string); ok {
			details[k] = s
		}
	}

	Error(w, err.StatusCode, errorCode(err.Err), err.Message, details)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return constants.CodeNotFound
	case errors.Is(err, ErrBadRequest):
		return constants.CodeBadRequest
	case errors.Is(err, ErrUnauthorized):
		return constants.CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return constants.CodeForbidden
	case errors.Is(err, ErrValidation):
		return constants.CodeValidationError
	case errors.Is(err, ErrDuplicate):
		return constants.CodeConflict
	case errors.Is(err, ErrInvalidCredentials):
		return constants.CodeInvalidCredentials
	case errors.Is(err, ErrExpiredToken):
		return constants.CodeTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return constants.CodeTokenInvalid
	case errors.Is(err, ErrTooManyRequests):
		return constants.CodeTooManyRequests
	}
	return constants.CodeInternalError
}

// SendJSON marshals data and writes it with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, http.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// TooManyRequests sends a 429 response with a Retry-After hint in seconds.
func TooManyRequests(w http.ResponseWriter, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
	}
	Error(w, http.StatusTooManyRequests, constants.CodeTooManyRequests, constants.MsgTooManyRequests, nil)
}

// InternalServerError logs err and sends a generic 500 response.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

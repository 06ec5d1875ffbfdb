package utils

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("invalid request")
	ErrInternalServer     = errors.New("internal server error")
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyRequests    = errors.New("too many requests")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers
	Field      string // Field related to the error (for validation errors)
	Details    map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewNotFoundMessage creates a not found error carrying a fixed user-facing message.
func NewNotFoundMessage(message string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	return &AppError{
		Err:        ErrUnauthorized,
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	return &AppError{
		Err:        ErrForbidden,
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
	}
}

// NewDetailedInternalError creates an internal error whose message embeds the cause.
// The annotation endpoint reports failures this way so the dashboard can show them.
func NewDetailedInternalError(prefix string, err error) *AppError {
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("%s: %s", prefix, cause),
		DevInfo:    cause,
	}
}

// NewDuplicateError creates a new duplicate resource error
func NewDuplicateError(resourceType, field string, value interface{}) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("%s with %s '%v' already exists", resourceType, field, value),
		Field:      field,
	}
}

// NewConflictError creates a conflict error reported with the given HTTP status.
func NewConflictError(statusCode int, message string) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewInvalidCredentialsError creates a new invalid credentials error
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Err:        ErrInvalidCredentials,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgInvalidPassword,
	}
}

// NewExpiredTokenError creates a new expired token error
func NewExpiredTokenError() *AppError {
	return &AppError{
		Err:        ErrExpiredToken,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgTokenExpired,
	}
}

// NewInvalidTokenError creates a new invalid token error
func NewInvalidTokenError() *AppError {
	return &AppError{
		Err:        ErrInvalidToken,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgInvalidToken,
	}
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, ErrNotFound):
		return NewNotFoundMessage(constants.MsgResourceNotFound)
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("")
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewConflictError(http.StatusConflict, "A resource with the same unique identifier already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return NewInvalidCredentialsError()
	case errors.Is(err, ErrExpiredToken):
		return NewExpiredTokenError()
	case errors.Is(err, ErrInvalidToken):
		return NewInvalidTokenError()
	case errors.Is(err, ErrTooManyRequests):
		return New(ErrTooManyRequests, http.StatusTooManyRequests, constants.MsgTooManyRequests)
	}

	if IsUniqueViolation(err) {
		return &AppError{
			Err:        ErrDuplicate,
			StatusCode: http.StatusConflict,
			Message:    "A resource with the same unique identifier already exists",
			DevInfo:    err.Error(),
			Field:      uniqueViolationField(err),
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23502" {
		field := pqErr.Column
		return &AppError{
			Err:        ErrValidation,
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("The %s field cannot be empty", field),
			DevInfo:    pqErr.Error(),
			Field:      field,
		}
	}

	return NewInternalServerError(err)
}

// IsUniqueViolation reports whether err is a unique constraint violation from
// either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// uniqueViolationField extracts the column behind an idx_<column> constraint.
func uniqueViolationField(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if parts := strings.SplitN(pqErr.Constraint, "idx_", 2); len(parts) == 2 {
			return parts[1]
		}
		return ""
	}

	// sqlite reports "UNIQUE constraint failed: users.username"
	msg := err.Error()
	if i := strings.LastIndex(msg, "."); i >= 0 && strings.Contains(msg, "constraint failed") {
		return strings.TrimSpace(msg[i+1:])
	}
	return ""
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// IsDuplicateError checks if an error is a duplicate resource error
func IsDuplicateError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrDuplicate)
	}
	return errors.Is(err, ErrDuplicate)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrValidation)
	}
	return errors.Is(err, ErrValidation)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

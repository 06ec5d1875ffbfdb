package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// formDecoder maps url-encoded and multipart values onto `form` tagged structs
	formDecoder *form.Decoder
	formOnce    sync.Once
)

// InitValidator initializes the validator with custom validations
func InitValidator() {
	validate = validator.New()

	// Report json tag names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations(validate)

	log.Debug().Msg("Validator initialized")
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// FormDecoder returns the shared form decoder.
func FormDecoder() *form.Decoder {
	formOnce.Do(func() {
		formDecoder = form.NewDecoder()
	})
	return formDecoder
}

// RegisterFormType registers a custom conversion for fields of the given type
// when decoding form values.
func RegisterFormType(fn form.DecodeCustomTypeFunc, types ...interface{}) {
	FormDecoder().RegisterCustomTypeFunc(fn, types...)
}

// DecodeJSON decodes a JSON request body into the provided struct
// with size limits and user-friendly errors.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &maxBytesError):
			return NewBadRequestError("Request body too large")

		case errors.Is(err, io.EOF):
			return NewBadRequestError("Request body must not be empty")

		case errors.Is(err, io.ErrUnexpectedEOF):
			return NewBadRequestError("Request body contains malformed JSON")

		case errors.As(err, &syntaxError):
			return NewBadRequestError(fmt.Sprintf("Request body contains malformed JSON (at position %d)", syntaxError.Offset))

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return NewValidationError(unmarshalTypeError.Field, fmt.Sprintf("Must be a %s", unmarshalTypeError.Type.String()))
			}
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", unmarshalTypeError.Offset))

		case errors.As(err, &invalidUnmarshalError):
			return NewInternalServerError(err)

		default:
			var appErr *AppError
			if errors.As(err, &appErr) {
				return appErr
			}
			return NewBadRequestError(fmt.Sprintf("Error decoding JSON: %s", err.Error()))
		}
	}

	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}

	return nil
}

// DecodeForm decodes url-encoded or multipart form values into v.
// Multipart bodies must already be parsed by the caller when a size limit applies.
func DecodeForm(r *http.Request, v interface{}) error {
	if r.Form == nil {
		if isMultipart(r) {
			if err := r.ParseMultipartForm(constants.MaxRequestBodySize); err != nil {
				return NewBadRequestError(fmt.Sprintf("Error parsing multipart form: %s", err.Error()))
			}
		} else if err := r.ParseForm(); err != nil {
			return NewBadRequestError(fmt.Sprintf("Error parsing form: %s", err.Error()))
		}
	}

	if err := FormDecoder().Decode(v, r.Form); err != nil {
		var decodeErrs form.DecodeErrors
		if errors.As(err, &decodeErrs) {
			for field, fieldErr := range decodeErrs {
				var appErr *AppError
				if errors.As(fieldErr, &appErr) {
					return appErr
				}
				return NewValidationError(field, "Invalid value")
			}
		}
		return NewBadRequestError(fmt.Sprintf("Error decoding form: %s", err.Error()))
	}

	return nil
}

// Bind decodes the request body according to its content type. JSON bodies use
// DecodeJSON; url-encoded and multipart bodies use DecodeForm.
func Bind(r *http.Request, v interface{}) error {
	if isJSON(r) {
		return DecodeJSON(r, v)
	}
	return DecodeForm(r, v)
}

// ValidateStruct validates a struct using the validator
func ValidateStruct(v interface{}) error {
	err := GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		if len(validationErrors) == 1 {
			e := validationErrors[0]
			return NewValidationError(e.Field(), getErrorMessage(e))
		}

		details := make(map[string]string)
		for _, e := range validationErrors {
			details[e.Field()] = getErrorMessage(e)
		}

		return NewValidationErrorWithDetails("Multiple validation errors", details)
	}

	return NewBadRequestError(err.Error())
}

// BindAndValidate decodes the request body in any supported encoding and validates it.
func BindAndValidate(r *http.Request, v interface{}) error {
	if err := Bind(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(constants.HeaderContentType))
	return err == nil && mediaType == constants.ContentTypeJSON
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(constants.HeaderContentType))
	return err == nil && mediaType == constants.ContentTypeMultipart
}

// getErrorMessage returns a user-friendly error message for a validation error
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "required_without":
		return fmt.Sprintf("This field is required when %s is not provided", e.Param())
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	case "username":
		return "Must contain only letters, digits, '.', '_' or '-'"
	case "notblank":
		return "Must not be blank"
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", e.Tag())
	}
}

// registerCustomValidations adds custom validation functions to the validator
func registerCustomValidations(v *validator.Validate) {
	if err := v.RegisterValidation("username", validateUsername); err != nil {
		log.Error().Err(err).Msg("Failed to register username validation")
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		log.Error().Err(err).Msg("Failed to register notblank validation")
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	for _, char := range fl.Field().String() {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) && !strings.ContainsRune("._-", char) {
			return false
		}
	}
	return true
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// NewValidationErrorWithDetails creates a validation error with multiple field details
func NewValidationErrorWithDetails(message string, details map[string]string) *AppError {
	detailsMap := make(map[string]interface{})
	for k, v := range details {
		detailsMap[k] = v
	}

	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Details:    detailsMap,
	}
}

package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive integer identifier such as a bot id taken from a
// path or query parameter. Failures are reported as validation errors on field.
func ParseID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, NewValidationError(field, "This field is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError(field, fmt.Sprintf("Must be a positive integer, got '%s'", raw))
	}
	return id, nil
}

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// FormatInt64 converts an int64 to its decimal string form.
func FormatInt64(i int64) string {
	return strconv.FormatInt(i, 10)
}

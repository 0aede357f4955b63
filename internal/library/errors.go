package library

import (
	"errors"
	"net/http"

	"github.com/fieldsafe/ramspack/internal/schema"
)

// Domain errors for library operations.
var (
	ErrNotFound = errors.New("entity not found")
	ErrInvalid  = errors.New("invalid payload")
)

// MapHTTPStatus maps library domain errors to appropriate HTTP status codes.
// Validation failures map to 422 so callers can distinguish rule violations
// from malformed requests.
func MapHTTPStatus(err error) int {
	var violations schema.Violations
	if errors.As(err, &violations) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package wizard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fieldsafe/ramspack/internal/schema"
)

// Domain errors for wizard operations.
var (
	ErrUnknownStep = errors.New("unknown wizard step")
	ErrInvalid     = errors.New("invalid wizard request")
)

// GateError reports a blocked step transition as a single human-readable
// message. It is recoverable: completing the named fields unblocks the step.
type GateError struct {
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step.Label(), e.Message)
}

// MapHTTPStatus maps wizard errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var gate *GateError
	if errors.As(err, &gate) {
		return http.StatusConflict
	}

	var violations schema.Violations
	if errors.As(err, &violations) {
		return http.StatusUnprocessableEntity
	}

	if errors.Is(err, ErrUnknownStep) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package exports

import (
	"errors"
	"net/http"

	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/pkg/storage"
)

// ErrInvalid indicates a malformed export request.
var ErrInvalid = errors.New("invalid export request")

// ErrRenderFailed wraps renderer collaborator failures. The underlying
// cause is preserved verbatim.
var ErrRenderFailed = errors.New("render failed")

// ErrUploadFailed wraps storage collaborator failures on artifact upload.
var ErrUploadFailed = errors.New("artifact upload failed")

// MapHTTPStatus translates export errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, library.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrRenderFailed), errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

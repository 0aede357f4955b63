package auth

import (
	"errors"
	"net/http"
)

// ErrInvalidCredentials indicates a rejected login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthorized indicates a missing or unverifiable bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotReady indicates the provider has not completed discovery yet.
var ErrNotReady = errors.New("auth provider not ready")

// MapHTTPStatus translates auth errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

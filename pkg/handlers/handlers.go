// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Detailer lets an error attach structured detail to the JSON error body,
// e.g. a validation error carrying its full violation set.
type Detailer interface {
	Detail() any
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error body with the given
// status code. Errors implementing Detailer contribute a detail field.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if logger != nil {
		logger.Error("request failed", "status", status, "error", err)
	}

	body := map[string]any{"error": err.Error()}

	var detailer Detailer
	if errors.As(err, &detailer) {
		body["detail"] = detailer.Detail()
	}

	RespondJSON(w, status, body)
}

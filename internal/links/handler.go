package links

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/render"
	"github.com/fieldsafe/ramspack/pkg/handlers"
	"github.com/fieldsafe/ramspack/pkg/routes"
)

// Handler provides HTTP endpoints for share link operations. The Open
// endpoint is the public surface; create and revoke sit behind auth with
// the rest of the API.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "links"),
	}
}

// Routes returns the route group definition for link endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/links",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/rams/{id}", Handler: h.Create},
			{Method: "GET", Pattern: "/{token}", Handler: h.Open},
			{Method: "DELETE", Pattern: "/{token}", Handler: h.Revoke},
		},
	}
}

// Create publishes a share link for a document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	link, err := h.sys.Create(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, link)
}

// Open streams the artifact behind a share token.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(r.PathValue("token"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	body, err := h.sys.Open(r.Context(), token)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", render.ContentTypePDF)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("link stream failed", "token", token, "error", err)
	}
}

// Revoke deletes a share token.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(r.PathValue("token"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if err := h.sys.Revoke(r.Context(), token); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

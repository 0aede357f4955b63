package exports

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/render"
	"github.com/fieldsafe/ramspack/pkg/handlers"
	"github.com/fieldsafe/ramspack/pkg/routes"
	"github.com/fieldsafe/ramspack/pkg/storage"
)

// Handler provides HTTP endpoints for export operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxListSize int32
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger, maxListSize int32) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "exports"),
		maxListSize: maxListSize,
	}
}

// Routes returns the route group definition for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/exports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.ListArtifacts},
			{Method: "POST", Pattern: "/rams/{id}", Handler: h.Export},
			{Method: "POST", Pattern: "/batch", Handler: h.ExportBatch},
			{Method: "GET", Pattern: "/artifacts/{reference}", Handler: h.Artifact},
		},
	}
}

// ListArtifacts returns one page of stored artifact metadata.
func (h *Handler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	maxResults, err := storage.ParseMaxResults(
		r.URL.Query().Get("max_results"),
		h.maxListSize,
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ListArtifacts(r.Context(), r.URL.Query().Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Export renders and stores the PDF artifact for a single document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	exp, err := h.sys.Export(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, exp)
}

// ExportBatch renders and stores artifacts for multiple documents.
func (h *Handler) ExportBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DocumentIDs []uuid.UUID `json:"document_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	result, err := h.sys.ExportBatch(r.Context(), body.DocumentIDs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Artifact streams a stored PDF artifact by document reference.
func (h *Handler) Artifact(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	if reference == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	body, err := h.sys.OpenArtifact(r.Context(), artifactKey(reference))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", render.ContentTypePDF)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("artifact stream failed", "reference", reference, "error", err)
	}
}

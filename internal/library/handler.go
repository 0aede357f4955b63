package library

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/schema"
	"github.com/fieldsafe/ramspack/pkg/handlers"
	"github.com/fieldsafe/ramspack/pkg/pagination"
	"github.com/fieldsafe/ramspack/pkg/routes"
)

// Handler provides HTTP endpoints for library operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "library"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for library endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/library",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/save", Handler: h.Save},
			{Method: "GET", Pattern: "/hazards", Handler: h.ListHazards},
			{Method: "GET", Pattern: "/masters", Handler: h.ListMasters},
			{Method: "GET", Pattern: "/masters/{id}", Handler: h.FindMaster},
			{Method: "DELETE", Pattern: "/masters/{id}", Handler: h.DeleteMaster},
			{Method: "GET", Pattern: "/rams", Handler: h.ListDocuments},
			{Method: "GET", Pattern: "/rams/{id}", Handler: h.FindDocument},
			{Method: "PUT", Pattern: "/rams/{id}", Handler: h.PatchDocument},
			{Method: "DELETE", Pattern: "/rams/{id}", Handler: h.DeleteDocument},
			{Method: "GET", Pattern: "/liftplans", Handler: h.ListLiftPlans},
			{Method: "GET", Pattern: "/liftplans/{id}", Handler: h.FindLiftPlan},
			{Method: "DELETE", Pattern: "/liftplans/{id}", Handler: h.DeleteLiftPlan},
		},
	}
}

// Save persists the in-memory library through the storage collaborator.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Save(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// ListHazards returns a paginated list of hazard templates.
func (h *Handler) ListHazards(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.HazardTemplates(page))
}

// ListMasters returns a paginated list of master documents.
func (h *Handler) ListMasters(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.Masters(page))
}

// FindMaster returns a single master document by its UUID path parameter.
func (h *Handler) FindMaster(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	m, err := h.sys.FindMaster(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, m)
}

// DeleteMaster removes a master document.
func (h *Handler) DeleteMaster(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.sys.DeleteMaster)
}

// ListDocuments returns a paginated list of RAMS documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.Documents(page))
}

// FindDocument returns a single RAMS document by its UUID path parameter.
func (h *Handler) FindDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	d, err := h.sys.FindDocument(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, d)
}

// PatchDocument applies a validated partial update to a RAMS document.
// Validation failures return the complete violation set.
func (h *Handler) PatchDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var patch schema.RAMSPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	d, err := h.sys.PatchDocument(id, patch)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, d)
}

// DeleteDocument removes a RAMS document.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.sys.DeleteDocument)
}

// ListLiftPlans returns a paginated list of lift plans.
func (h *Handler) ListLiftPlans(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.LiftPlans(page))
}

// FindLiftPlan returns a single lift plan by its UUID path parameter.
func (h *Handler) FindLiftPlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	lp, err := h.sys.FindLiftPlan(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, lp)
}

// DeleteLiftPlan removes a lift plan.
func (h *Handler) DeleteLiftPlan(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.sys.DeleteLiftPlan)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(uuid.UUID) error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if err := del(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

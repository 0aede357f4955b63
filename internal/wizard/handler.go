package wizard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/schema"
	"github.com/fieldsafe/ramspack/pkg/handlers"
	"github.com/fieldsafe/ramspack/pkg/routes"
)

// Handler provides HTTP endpoints for driving the wizard session.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "wizard"),
	}
}

// Routes returns the route group definition for wizard endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/wizard",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.State},
			{Method: "POST", Pattern: "/next", Handler: h.Next},
			{Method: "POST", Pattern: "/back", Handler: h.Back},
			{Method: "POST", Pattern: "/lift-plan", Handler: h.SetLiftPlan},
			{Method: "POST", Pattern: "/reset", Handler: h.Reset},
			{Method: "PUT", Pattern: "/master", Handler: h.UpdateMaster},
			{Method: "PUT", Pattern: "/rams", Handler: h.UpdateDocument},
			{Method: "PUT", Pattern: "/liftplan", Handler: h.UpdateLiftPlan},
			{Method: "POST", Pattern: "/method-steps", Handler: h.AddMethodStep},
			{Method: "POST", Pattern: "/method-steps/remove", Handler: h.RemoveMethodSteps},
			{Method: "POST", Pattern: "/risks", Handler: h.AddRisk},
			{Method: "POST", Pattern: "/signatures", Handler: h.AddSignature},
			{Method: "POST", Pattern: "/commit", Handler: h.Commit},
		},
	}
}

// State returns the current wizard snapshot.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.State())
}

// Next runs the current step's gate and advances on success. A blocked gate
// returns 409 with the gate message.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.sys.Next()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// Back moves to the previous step unconditionally.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Back())
}

// SetLiftPlan toggles lift plan inclusion, recomputing the step list.
func (h *Handler) SetLiftPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Include bool `json:"include"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.sys.SetIncludeLiftPlan(req.Include))
}

// Reset discards the working draft and starts a fresh one.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Reset())
}

// UpdateMaster applies a validated partial update to the draft master document.
func (h *Handler) UpdateMaster(w http.ResponseWriter, r *http.Request) {
	var patch schema.MasterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	state, err := h.sys.UpdateMaster(patch)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// UpdateDocument applies a validated partial update to the draft RAMS document.
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var patch schema.RAMSPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	state, err := h.sys.UpdateDocument(patch)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// UpdateLiftPlan applies a validated partial update to the draft lift plan.
func (h *Handler) UpdateLiftPlan(w http.ResponseWriter, r *http.Request) {
	var patch schema.LiftPlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	state, err := h.sys.UpdateLiftPlan(patch)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// AddMethodStep appends a method statement step.
func (h *Handler) AddMethodStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.sys.AddMethodStep(req.Description))
}

// RemoveMethodSteps removes method steps by index.
func (h *Handler) RemoveMethodSteps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Indices []int `json:"indices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.sys.RemoveMethodSteps(req.Indices))
}

// AddRisk adds a risk entry, from a hazard template when template_id is
// supplied and with blank mid-range defaults otherwise.
func (h *Handler) AddRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID *uuid.UUID `json:"template_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if req.TemplateID == nil {
		handlers.RespondJSON(w, http.StatusOK, h.sys.AddBlankRisk())
		return
	}

	state, err := h.sys.AddRisk(*req.TemplateID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// AddSignature appends a signature record to the draft document.
func (h *Handler) AddSignature(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Image []byte `json:"image,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	state, err := h.sys.AddSignature(req.Name, req.Role, req.Image)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, state)
}

// Commit upserts the draft triple into the library.
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Commit())
}

package wizard

import (
	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/risk"
	"github.com/fieldsafe/ramspack/internal/schema"
)

// State is the wizard snapshot returned to callers after every operation.
type State struct {
	Steps             []Step             `json:"steps"`
	Current           Step               `json:"current"`
	IncludeLiftPlan   bool               `json:"include_lift_plan"`
	Master            masters.Master     `json:"master"`
	Document          rams.Document      `json:"document"`
	LiftPlan          liftplans.LiftPlan `json:"lift_plan"`
	OverallRiskReview risk.ReviewLevel   `json:"overall_risk_review"`
}

// System defines the public contract for wizard operations.
type System interface {
	Handler() *Handler

	State() State
	Next() (State, error)
	Back() State
	SetIncludeLiftPlan(include bool) State
	Reset() State

	UpdateMaster(patch schema.MasterPatch) (State, error)
	UpdateDocument(patch schema.RAMSPatch) (State, error)
	UpdateLiftPlan(patch schema.LiftPlanPatch) (State, error)

	AddMethodStep(description string) State
	RemoveMethodSteps(indices []int) State
	AddRisk(templateID uuid.UUID) (State, error)
	AddBlankRisk() State
	AddSignature(name, role string, image []byte) (State, error)

	Commit() State
}

package library

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/schema"
	"github.com/fieldsafe/ramspack/pkg/pagination"
)

// Store is the persistence collaborator contract. Failures are recoverable:
// on load failure the service falls back to a seeded default library, on
// save failure the in-memory state stays authoritative.
type Store interface {
	LoadLibrary(ctx context.Context) (*Library, error)
	SaveLibrary(ctx context.Context, lib *Library) error
}

// System defines the public contract for library operations.
type System interface {
	Handler() *Handler

	Load(ctx context.Context) error
	Save(ctx context.Context) error

	HazardTemplates(page pagination.PageRequest) pagination.PageResult[hazards.Template]
	Masters(page pagination.PageRequest) pagination.PageResult[masters.Master]
	Documents(page pagination.PageRequest) pagination.PageResult[rams.Document]
	LiftPlans(page pagination.PageRequest) pagination.PageResult[liftplans.LiftPlan]

	FindMaster(id uuid.UUID) (*masters.Master, error)
	FindDocument(id uuid.UUID) (*rams.Document, error)
	FindLiftPlan(id uuid.UUID) (*liftplans.LiftPlan, error)
	FindHazardTemplate(id uuid.UUID) (*hazards.Template, error)
	LiftPlanForDocument(docID uuid.UUID) *liftplans.LiftPlan

	UpsertMaster(m masters.Master)
	UpsertDocument(d rams.Document)
	UpsertLiftPlan(lp liftplans.LiftPlan)

	PatchDocument(id uuid.UUID, patch schema.RAMSPatch) (*rams.Document, error)

	DeleteMaster(id uuid.UUID) error
	DeleteDocument(id uuid.UUID) error
	DeleteLiftPlan(id uuid.UUID) error
}

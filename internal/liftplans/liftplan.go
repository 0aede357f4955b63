// Package liftplans implements the lifting plan domain for Ramspack.
// A lift plan is a specialized sub-document for crane operations, optionally
// linked to a RAMS document by identifier.
package liftplans

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies the lifting operation.
type Category string

// Lift categories per lifting operation practice.
const (
	CategoryRoutine  Category = "routine"
	CategoryComplex  Category = "complex"
	CategoryCritical Category = "critical"
)

// Categories returns the closed set of valid lift categories.
func Categories() []Category {
	return []Category{CategoryRoutine, CategoryComplex, CategoryCritical}
}

// LiftPlan describes a crane lifting operation. RAMSDocumentID is a weak
// reference: lifecycles are independent and referential integrity belongs
// to the storage collaborator.
type LiftPlan struct {
	ID              uuid.UUID  `json:"id"`
	RAMSDocumentID  *uuid.UUID `json:"rams_document_id,omitempty"`
	Title           string     `json:"title"`
	Category        Category   `json:"category"`
	AppointedPerson string     `json:"appointed_person"`
	CranePlant      string     `json:"crane_plant"`
	LoadDescription string     `json:"load_description"`
	LoadWeight      string     `json:"load_weight"`
	RiggingDetails  string     `json:"rigging_details"`
	MethodSequence  []string   `json:"method_sequence"`
	ExclusionZone   string     `json:"exclusion_zone"`
	EmergencyNotes  string     `json:"emergency_notes"`
	DrawingImage    []byte     `json:"drawing_image,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewDraft creates a blank routine lift plan.
func NewDraft(now time.Time) LiftPlan {
	return LiftPlan{
		ID:        uuid.New(),
		Category:  CategoryRoutine,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

package schema

import "github.com/fieldsafe/ramspack/internal/liftplans"

// MaxMethodSequence caps the lift method sequence length.
const MaxMethodSequence = 50

// LiftPlanPatch is a partial update for a lift plan.
type LiftPlanPatch struct {
	Title           *string   `json:"title,omitempty"`
	Category        *string   `json:"category,omitempty"`
	AppointedPerson *string   `json:"appointed_person,omitempty"`
	CranePlant      *string   `json:"crane_plant,omitempty"`
	LoadDescription *string   `json:"load_description,omitempty"`
	LoadWeight      *string   `json:"load_weight,omitempty"`
	RiggingDetails  *string   `json:"rigging_details,omitempty"`
	MethodSequence  *[]string `json:"method_sequence,omitempty"`
	ExclusionZone   *string   `json:"exclusion_zone,omitempty"`
	EmergencyNotes  *string   `json:"emergency_notes,omitempty"`
}

// Validate checks only the supplied fields.
func (p LiftPlanPatch) Validate() Violations {
	var c Checker

	if p.Title != nil {
		c.NotBlank("title", *p.Title)
		c.MaxLen("title", *p.Title, MaxTitleLength)
	}
	if p.Category != nil {
		c.Enum("category", *p.Category,
			string(liftplans.CategoryRoutine),
			string(liftplans.CategoryComplex),
			string(liftplans.CategoryCritical),
		)
	}
	if p.AppointedPerson != nil {
		c.NotBlank("appointed_person", *p.AppointedPerson)
		c.MaxLen("appointed_person", *p.AppointedPerson, MaxNameLength)
	}
	if p.MethodSequence != nil {
		c.MaxItems("method_sequence", len(*p.MethodSequence), MaxMethodSequence)
	}

	return c.Result()
}

// Apply merges the supplied fields onto a lift plan.
func (p LiftPlanPatch) Apply(lp *liftplans.LiftPlan) {
	if p.Title != nil {
		lp.Title = *p.Title
	}
	if p.Category != nil {
		lp.Category = liftplans.Category(*p.Category)
	}
	if p.AppointedPerson != nil {
		lp.AppointedPerson = *p.AppointedPerson
	}
	if p.CranePlant != nil {
		lp.CranePlant = *p.CranePlant
	}
	if p.LoadDescription != nil {
		lp.LoadDescription = *p.LoadDescription
	}
	if p.LoadWeight != nil {
		lp.LoadWeight = *p.LoadWeight
	}
	if p.RiggingDetails != nil {
		lp.RiggingDetails = *p.RiggingDetails
	}
	if p.MethodSequence != nil {
		lp.MethodSequence = *p.MethodSequence
	}
	if p.ExclusionZone != nil {
		lp.ExclusionZone = *p.ExclusionZone
	}
	if p.EmergencyNotes != nil {
		lp.EmergencyNotes = *p.EmergencyNotes
	}
}

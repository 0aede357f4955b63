// Package rams implements the RAMS document domain for Ramspack.
// A RAMS document pairs a risk assessment (scored hazard entries) with a
// method statement (ordered work steps), plus PPE requirements, emergency
// arrangements, appendices, and sign-off records.
package rams

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/risk"
)

// Document status values. A document is a draft until issued.
const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
)

// MethodStep is a single step of the method statement. Sequence is 1-based
// and re-derived after every mutation so it is always contiguous.
type MethodStep struct {
	Sequence    int    `json:"sequence"`
	Description string `json:"description"`
}

// Emergency holds the fixed emergency arrangement slots.
type Emergency struct {
	FirstAidStation string `json:"first_aid_station"`
	AssemblyPoint   string `json:"assembly_point"`
	Contact         string `json:"contact"`
}

// Signature is an immutable sign-off record appended to a document revision.
type Signature struct {
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	SignedAt time.Time `json:"signed_at"`
	Image    []byte    `json:"image,omitempty"`
}

// Appendix attaches supporting material to a document: either embedded
// image bytes or an external document reference by URL, never both.
type Appendix struct {
	Title     string `json:"title"`
	Image     []byte `json:"image,omitempty"`
	PublicURL string `json:"public_url,omitempty"`
}

// Document is a full RAMS body.
type Document struct {
	ID               uuid.UUID    `json:"id"`
	MasterID         uuid.UUID    `json:"master_id"`
	Title            string       `json:"title"`
	Reference        string       `json:"reference"`
	Status           string       `json:"status"`
	ScopeOfWorks     string       `json:"scope_of_works"`
	PreparedBy       string       `json:"prepared_by"`
	ApprovedBy       string       `json:"approved_by"`
	MethodSteps      []MethodStep `json:"method_steps"`
	PPE              []string     `json:"ppe"`
	PlantEquipment   []string     `json:"plant_equipment"`
	Tools            []string     `json:"tools"`
	Consumables      []string     `json:"consumables"`
	Materials        []string     `json:"materials"`
	Risks            []risk.Entry `json:"risks"`
	Emergency        Emergency    `json:"emergency"`
	Tags             []string     `json:"tags"`
	RequiresLiftPlan bool         `json:"requires_lift_plan"`
	Appendices       []Appendix   `json:"appendices"`
	Signatures       []Signature  `json:"signatures"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NewDraft creates a blank draft document with the given reference code.
func NewDraft(reference string, now time.Time) Document {
	return Document{
		ID:        uuid.New(),
		Reference: reference,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OverallRiskReview returns the classification of the maximum residual score
// across all risk entries. An empty assessment scores 0 and reads Very Low.
func (d *Document) OverallRiskReview() risk.ReviewLevel {
	return risk.Classify(risk.MaxResidualScore(d.Risks))
}

// AppendStep adds a method step and renumbers the sequence.
func (d *Document) AppendStep(description string) {
	d.MethodSteps = append(d.MethodSteps, MethodStep{Description: description})
	d.RenumberSteps()
}

// RemoveSteps deletes the steps at the given indices and renumbers the
// remainder. Out-of-range and duplicate indices are ignored.
func (d *Document) RemoveSteps(indices []int) {
	if len(indices) == 0 {
		return
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(d.MethodSteps) {
			drop[i] = true
		}
	}

	kept := d.MethodSteps[:0]
	for i := range d.MethodSteps {
		if !drop[i] {
			kept = append(kept, d.MethodSteps[i])
		}
	}
	d.MethodSteps = kept
	d.RenumberSteps()
}

// RenumberSteps rewrites sequence numbers to a contiguous 1-based run in
// list order. Applied after every mutation, including reordering, so the
// sequence never has gaps or duplicates.
func (d *Document) RenumberSteps() {
	for i := range d.MethodSteps {
		d.MethodSteps[i].Sequence = i + 1
	}
}

// AppendSignature adds a sign-off record stamped at the given time.
func (d *Document) AppendSignature(name, role string, image []byte, now time.Time) {
	d.Signatures = append(d.Signatures, Signature{
		Name:     name,
		Role:     role,
		SignedAt: now,
		Image:    image,
	})
}

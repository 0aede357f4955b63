// Package layout implements the document transformation pipeline for
// Ramspack. It reduces a finalized master/RAMS/lift-plan triple into one
// renderer-agnostic layout document with no residual references to the
// source entity types. The transform is pure: rebuilt fresh on every
// export, never mutated by upstream editing flows.
package layout

import (
	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/risk"
)

// Field is a single labeled value on a cover card.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CoverCard groups related cover details under a title.
type CoverCard struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Header is the document masthead.
type Header struct {
	Title       string `json:"title"`
	Reference   string `json:"reference"`
	ProjectName string `json:"project_name"`
	IssuedOn    string `json:"issued_on"`
}

// Metadata is the document-level summary block.
type Metadata struct {
	ClientName     string `json:"client_name"`
	ContractorName string `json:"contractor_name"`
	SiteAddress    string `json:"site_address"`
	PreparedBy     string `json:"prepared_by"`
	ApprovedBy     string `json:"approved_by"`
	Status         string `json:"status"`
	OverallRisk    Badge  `json:"overall_risk"`
}

// ContentsEntry is one line of the contents listing.
type ContentsEntry struct {
	Sequence int    `json:"sequence"`
	Title    string `json:"title"`
}

// Badge pairs a literal score string with its classification, computed
// fresh at build time so pre-export edits are always reflected.
type Badge struct {
	Score string           `json:"score"`
	Level risk.ReviewLevel `json:"level"`
	Label string           `json:"label"`
}

// RiskRow is a presentation-ready risk assessment row.
type RiskRow struct {
	Activity        string `json:"activity"`
	Hazard          string `json:"hazard"`
	PersonsAtRisk   string `json:"persons_at_risk"`
	ControlMeasures string `json:"control_measures"`
	Initial         Badge  `json:"initial"`
	Residual        Badge  `json:"residual"`
}

// LiftPreview is the condensed lift plan summary attached to the method
// section when a lifting plan is included. Absent otherwise, never a
// placeholder.
type LiftPreview struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	CranePlant      string `json:"crane_plant"`
	LoadDescription string `json:"load_description"`
	LoadWeight      string `json:"load_weight"`
	KeyNotes        string `json:"key_notes"`
}

// EmergencySlots are the fixed labeled emergency fields.
type EmergencySlots struct {
	FirstAidStation string `json:"first_aid_station"`
	AssemblyPoint   string `json:"assembly_point"`
	Contact         string `json:"contact"`
}

// SectionBody is the structured content of an assigned section. The list
// fields are never tagged omitempty: a section that owns a list carries it
// as an empty slice when nothing was specified, so a renderer can show
// "None specified" instead of dropping the block.
type SectionBody struct {
	Narrative       string          `json:"narrative,omitempty"`
	PPE             []string        `json:"ppe"`
	PlantEquipment  []string        `json:"plant_equipment"`
	Tools           []string        `json:"tools"`
	Consumables     []string        `json:"consumables"`
	Materials       []string        `json:"materials"`
	RiskRows        []RiskRow       `json:"risk_rows"`
	MethodStatement string          `json:"method_statement,omitempty"`
	Emergency       *EmergencySlots `json:"emergency,omitempty"`
	LiftPreview     *LiftPreview    `json:"lift_preview,omitempty"`
}

// Section is one assigned section of the layout document.
type Section struct {
	Title string      `json:"title"`
	Body  SectionBody `json:"body"`
}

// AppendixRef attaches supporting material: embedded image bytes or an
// external document URL, exactly one per appendix.
type AppendixRef struct {
	Title     string `json:"title"`
	Image     []byte `json:"image,omitempty"`
	PublicURL string `json:"public_url,omitempty"`
}

// Signer is one ordered entry of the sign-off block.
type Signer struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	SignedOn string `json:"signed_on"`
	Image    []byte `json:"image,omitempty"`
}

// SignOff is the closing block: explanatory text plus ordered signers.
type SignOff struct {
	Text    string   `json:"text"`
	Signers []Signer `json:"signers"`
}

// Document is the transformation output consumed by the renderer. It is a
// pure projection: its only identity is a deterministic generated id.
type Document struct {
	ID         uuid.UUID       `json:"id"`
	Header     Header          `json:"header"`
	Metadata   Metadata        `json:"metadata"`
	CoverCards []CoverCard     `json:"cover_cards"`
	Contents   []ContentsEntry `json:"contents"`
	Sections   []Section       `json:"sections"`
	Appendices []AppendixRef   `json:"appendices"`
	SignOff    SignOff         `json:"sign_off"`
}

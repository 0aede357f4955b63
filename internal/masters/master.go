// Package masters implements the master project document domain for Ramspack.
// The master document carries project identity, site and emergency details,
// and the ordered key contact list shared across every RAMS package for a project.
package masters

import (
	"time"

	"github.com/google/uuid"
)

// KeyContact is a single named contact on the master document.
type KeyContact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// Master is the project-level document: identity, site address, client and
// contractor names, emergency details, and key contacts.
type Master struct {
	ID                 uuid.UUID    `json:"id"`
	ProjectName        string       `json:"project_name"`
	SiteAddress        string       `json:"site_address"`
	ClientName         string       `json:"client_name"`
	ContractorName     string       `json:"contractor_name"`
	EmergencyContact   string       `json:"emergency_contact"`
	HospitalName       string       `json:"hospital_name"`
	HospitalDirections string       `json:"hospital_directions"`
	HospitalMapImage   []byte       `json:"hospital_map_image,omitempty"`
	KeyContacts        []KeyContact `json:"key_contacts"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// NewDraft creates a blank master document. At least one key contact slot
// always exists on creation; it may be blank but never absent.
func NewDraft(now time.Time) Master {
	return Master{
		ID:          uuid.New(),
		KeyContacts: []KeyContact{{}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

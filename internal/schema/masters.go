package schema

import "github.com/fieldsafe/ramspack/internal/masters"

// Field ceilings for master document payloads.
const (
	MaxNameLength       = 120
	MaxAddressLength    = 500
	MaxDirectionsLength = 1000
	MaxKeyContacts      = 12
)

// MasterCreate carries the data needed to create a master document.
// Create payloads require fields the corresponding patch treats as optional.
type MasterCreate struct {
	ProjectName        string               `json:"project_name"`
	SiteAddress        string               `json:"site_address"`
	ClientName         string               `json:"client_name"`
	ContractorName     string               `json:"contractor_name"`
	EmergencyContact   string               `json:"emergency_contact"`
	HospitalName       string               `json:"hospital_name"`
	HospitalDirections string               `json:"hospital_directions"`
	KeyContacts        []masters.KeyContact `json:"key_contacts"`
}

// Validate checks the create payload, reporting every violated field.
func (p MasterCreate) Validate() Violations {
	var c Checker

	c.Require("project_name", p.ProjectName)
	c.MaxLen("project_name", p.ProjectName, MaxNameLength)
	c.Require("site_address", p.SiteAddress)
	c.MaxLen("site_address", p.SiteAddress, MaxAddressLength)
	c.NotBlank("client_name", p.ClientName)
	c.MaxLen("client_name", p.ClientName, MaxNameLength)
	c.NotBlank("contractor_name", p.ContractorName)
	c.MaxLen("contractor_name", p.ContractorName, MaxNameLength)
	c.MaxLen("hospital_name", p.HospitalName, MaxNameLength)
	c.MaxLen("hospital_directions", p.HospitalDirections, MaxDirectionsLength)
	c.MaxItems("key_contacts", len(p.KeyContacts), MaxKeyContacts)

	return c.Result()
}

// Apply copies the create payload onto a master document. A document always
// keeps at least one key contact slot, so an empty payload list leaves the
// existing slots untouched.
func (p MasterCreate) Apply(m *masters.Master) {
	m.ProjectName = p.ProjectName
	m.SiteAddress = p.SiteAddress
	m.ClientName = p.ClientName
	m.ContractorName = p.ContractorName
	m.EmergencyContact = p.EmergencyContact
	m.HospitalName = p.HospitalName
	m.HospitalDirections = p.HospitalDirections
	if len(p.KeyContacts) > 0 {
		m.KeyContacts = p.KeyContacts
	}
}

// MasterPatch is a partial update: every field is an explicit optional.
// Present fields overwrite, absent fields retain the current value.
type MasterPatch struct {
	ProjectName        *string               `json:"project_name,omitempty"`
	SiteAddress        *string               `json:"site_address,omitempty"`
	ClientName         *string               `json:"client_name,omitempty"`
	ContractorName     *string               `json:"contractor_name,omitempty"`
	EmergencyContact   *string               `json:"emergency_contact,omitempty"`
	HospitalName       *string               `json:"hospital_name,omitempty"`
	HospitalDirections *string               `json:"hospital_directions,omitempty"`
	KeyContacts        *[]masters.KeyContact `json:"key_contacts,omitempty"`
}

// Validate checks only the supplied fields.
func (p MasterPatch) Validate() Violations {
	var c Checker

	if p.ProjectName != nil {
		c.Require("project_name", *p.ProjectName)
		c.MaxLen("project_name", *p.ProjectName, MaxNameLength)
	}
	if p.SiteAddress != nil {
		c.Require("site_address", *p.SiteAddress)
		c.MaxLen("site_address", *p.SiteAddress, MaxAddressLength)
	}
	if p.ClientName != nil {
		c.NotBlank("client_name", *p.ClientName)
		c.MaxLen("client_name", *p.ClientName, MaxNameLength)
	}
	if p.ContractorName != nil {
		c.NotBlank("contractor_name", *p.ContractorName)
		c.MaxLen("contractor_name", *p.ContractorName, MaxNameLength)
	}
	if p.HospitalName != nil {
		c.MaxLen("hospital_name", *p.HospitalName, MaxNameLength)
	}
	if p.HospitalDirections != nil {
		c.MaxLen("hospital_directions", *p.HospitalDirections, MaxDirectionsLength)
	}
	if p.KeyContacts != nil {
		c.MaxItems("key_contacts", len(*p.KeyContacts), MaxKeyContacts)
	}

	return c.Result()
}

// Apply merges the supplied fields onto a master document.
func (p MasterPatch) Apply(m *masters.Master) {
	if p.ProjectName != nil {
		m.ProjectName = *p.ProjectName
	}
	if p.SiteAddress != nil {
		m.SiteAddress = *p.SiteAddress
	}
	if p.ClientName != nil {
		m.ClientName = *p.ClientName
	}
	if p.ContractorName != nil {
		m.ContractorName = *p.ContractorName
	}
	if p.EmergencyContact != nil {
		m.EmergencyContact = *p.EmergencyContact
	}
	if p.HospitalName != nil {
		m.HospitalName = *p.HospitalName
	}
	if p.HospitalDirections != nil {
		m.HospitalDirections = *p.HospitalDirections
	}
	if p.KeyContacts != nil && len(*p.KeyContacts) > 0 {
		m.KeyContacts = *p.KeyContacts
	}
}

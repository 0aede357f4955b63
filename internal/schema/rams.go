package schema

import (
	"fmt"

	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/risk"
)

// Ceilings and bounds for RAMS document payloads.
const (
	MaxReferenceLength = 120
	MaxTitleLength     = 200
	MaxScopeLength     = 5000
	MaxTags            = 25
	MaxMethodSteps     = 100
	MinRiskValue       = 1
	MaxRiskValue       = 5
)

// RiskRow carries a single risk assessment row for validation before it is
// accepted into a document. Likelihood and severity values outside [1,5]
// are rejected, never clamped.
type RiskRow struct {
	Activity           string `json:"activity"`
	Hazard             string `json:"hazard"`
	PersonsAtRisk      string `json:"persons_at_risk"`
	InitialLikelihood  int    `json:"initial_likelihood"`
	InitialSeverity    int    `json:"initial_severity"`
	ControlMeasures    string `json:"control_measures"`
	ResidualLikelihood int    `json:"residual_likelihood"`
	ResidualSeverity   int    `json:"residual_severity"`
}

// Validate checks a standalone risk row.
func (p RiskRow) Validate() Violations {
	var c Checker
	p.check(&c, "")
	return c.Result()
}

func (p RiskRow) check(c *Checker, prefix string) {
	c.Require(prefix+"hazard", p.Hazard)
	c.Range(prefix+"initial_likelihood", p.InitialLikelihood, MinRiskValue, MaxRiskValue)
	c.Range(prefix+"initial_severity", p.InitialSeverity, MinRiskValue, MaxRiskValue)
	c.Range(prefix+"residual_likelihood", p.ResidualLikelihood, MinRiskValue, MaxRiskValue)
	c.Range(prefix+"residual_severity", p.ResidualSeverity, MinRiskValue, MaxRiskValue)
}

// Entry converts a validated row into a risk entry with fresh identity.
func (p RiskRow) Entry() risk.Entry {
	entry := risk.NewBlankEntry()
	entry.Activity = p.Activity
	entry.Hazard = p.Hazard
	entry.PersonsAtRisk = p.PersonsAtRisk
	entry.ControlMeasures = p.ControlMeasures
	entry.InitialLikelihood = p.InitialLikelihood
	entry.InitialSeverity = p.InitialSeverity
	entry.ResidualLikelihood = p.ResidualLikelihood
	entry.ResidualSeverity = p.ResidualSeverity
	return entry
}

// AppendixPayload attaches either embedded image bytes or an external
// document URL to a document. Exactly one of the two must be supplied.
type AppendixPayload struct {
	Title     string `json:"title"`
	Image     []byte `json:"image,omitempty"`
	PublicURL string `json:"public_url,omitempty"`
}

// Validate checks a standalone appendix payload.
func (p AppendixPayload) Validate() Violations {
	var c Checker
	p.check(&c, "")
	return c.Result()
}

func (p AppendixPayload) check(c *Checker, prefix string) {
	c.Require(prefix+"title", p.Title)

	hasImage := len(p.Image) > 0
	hasURL := p.PublicURL != ""

	switch {
	case hasImage && hasURL:
		c.Add(prefix+"public_url", RuleExclusive,
			"an appendix carries either an image or a public URL, not both")
	case !hasImage && !hasURL:
		c.Add(prefix+"public_url", RuleRequired,
			"an appendix requires either an image or a public URL")
	case hasURL:
		c.URL(prefix+"public_url", p.PublicURL)
	}
}

// RAMSBody is the full RAMS document payload validated before a document is
// created or the wizard promotes it. Create semantics: title, reference,
// scope, and prepared-by are all required.
type RAMSBody struct {
	Title            string            `json:"title"`
	Reference        string            `json:"reference"`
	Status           string            `json:"status"`
	ScopeOfWorks     string            `json:"scope_of_works"`
	PreparedBy       string            `json:"prepared_by"`
	ApprovedBy       string            `json:"approved_by"`
	MethodSteps      []string          `json:"method_steps"`
	PPE              []string          `json:"ppe"`
	Tags             []string          `json:"tags"`
	Risks            []RiskRow         `json:"risks"`
	Appendices       []AppendixPayload `json:"appendices"`
	RequiresLiftPlan bool              `json:"requires_lift_plan"`
}

// Validate checks the full body, reporting every violated field.
func (p RAMSBody) Validate() Violations {
	var c Checker

	c.Require("title", p.Title)
	c.MaxLen("title", p.Title, MaxTitleLength)
	c.Require("reference", p.Reference)
	c.MaxLen("reference", p.Reference, MaxReferenceLength)
	if p.Status != "" {
		c.Enum("status", p.Status, rams.StatusDraft, rams.StatusIssued)
	}
	c.Require("scope_of_works", p.ScopeOfWorks)
	c.MaxLen("scope_of_works", p.ScopeOfWorks, MaxScopeLength)
	c.Require("prepared_by", p.PreparedBy)
	c.MaxLen("prepared_by", p.PreparedBy, MaxNameLength)
	c.MaxItems("method_steps", len(p.MethodSteps), MaxMethodSteps)
	c.MaxItems("tags", len(p.Tags), MaxTags)

	for i, row := range p.Risks {
		row.check(&c, fmt.Sprintf("risks[%d].", i))
	}
	for i, appendix := range p.Appendices {
		appendix.check(&c, fmt.Sprintf("appendices[%d].", i))
	}

	return c.Result()
}

// RAMSPatch is a partial update with explicit optional fields: present
// fields overwrite, absent fields retain the current value. Only supplied
// fields are validated.
type RAMSPatch struct {
	Title        *string            `json:"title,omitempty"`
	Status       *string            `json:"status,omitempty"`
	ScopeOfWorks *string            `json:"scope_of_works,omitempty"`
	PreparedBy   *string            `json:"prepared_by,omitempty"`
	ApprovedBy   *string            `json:"approved_by,omitempty"`
	PPE          *[]string          `json:"ppe,omitempty"`
	Tags         *[]string          `json:"tags,omitempty"`
	Appendices   *[]AppendixPayload `json:"appendices,omitempty"`
	Emergency    *rams.Emergency    `json:"emergency,omitempty"`
}

// Validate checks only the supplied fields.
func (p RAMSPatch) Validate() Violations {
	var c Checker

	if p.Title != nil {
		c.Require("title", *p.Title)
		c.MaxLen("title", *p.Title, MaxTitleLength)
	}
	if p.Status != nil {
		c.Enum("status", *p.Status, rams.StatusDraft, rams.StatusIssued)
	}
	if p.ScopeOfWorks != nil {
		c.NotBlank("scope_of_works", *p.ScopeOfWorks)
		c.MaxLen("scope_of_works", *p.ScopeOfWorks, MaxScopeLength)
	}
	if p.PreparedBy != nil {
		c.NotBlank("prepared_by", *p.PreparedBy)
		c.MaxLen("prepared_by", *p.PreparedBy, MaxNameLength)
	}
	if p.ApprovedBy != nil {
		c.MaxLen("approved_by", *p.ApprovedBy, MaxNameLength)
	}
	if p.Tags != nil {
		c.MaxItems("tags", len(*p.Tags), MaxTags)
	}
	if p.Appendices != nil {
		for i, appendix := range *p.Appendices {
			appendix.check(&c, fmt.Sprintf("appendices[%d].", i))
		}
	}

	return c.Result()
}

// Apply merges the supplied fields onto a RAMS document.
func (p RAMSPatch) Apply(d *rams.Document) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.ScopeOfWorks != nil {
		d.ScopeOfWorks = *p.ScopeOfWorks
	}
	if p.PreparedBy != nil {
		d.PreparedBy = *p.PreparedBy
	}
	if p.ApprovedBy != nil {
		d.ApprovedBy = *p.ApprovedBy
	}
	if p.PPE != nil {
		d.PPE = *p.PPE
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	if p.Appendices != nil {
		appendices := make([]rams.Appendix, len(*p.Appendices))
		for i, a := range *p.Appendices {
			appendices[i] = rams.Appendix{
				Title:     a.Title,
				Image:     a.Image,
				PublicURL: a.PublicURL,
			}
		}
		d.Appendices = appendices
	}
	if p.Emergency != nil {
		d.Emergency = *p.Emergency
	}
}

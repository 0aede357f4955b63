// Package hazards implements the hazard template catalog for Ramspack.
// Templates carry default risk-to text, control measures, and scoring pairs
// used to pre-populate risk assessment rows.
package hazards

import (
	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/risk"
)

// Template is a reusable hazard definition from which risk entries are
// instantiated.
type Template struct {
	ID                 uuid.UUID `json:"id"`
	Category           string    `json:"category"`
	Title              string    `json:"title"`
	RiskTo             string    `json:"risk_to"`
	ControlMeasures    string    `json:"control_measures"`
	InitialLikelihood  int       `json:"initial_likelihood"`
	InitialSeverity    int       `json:"initial_severity"`
	ResidualLikelihood int       `json:"residual_likelihood"`
	ResidualSeverity   int       `json:"residual_severity"`
}

// Instantiate creates a risk entry seeded from the template defaults.
// The entry receives its own identity; later edits never touch the template.
func (t *Template) Instantiate() risk.Entry {
	return risk.Entry{
		ID:                 uuid.New(),
		Activity:           t.Category,
		Hazard:             t.Title,
		PersonsAtRisk:      t.RiskTo,
		ControlMeasures:    t.ControlMeasures,
		InitialLikelihood:  t.InitialLikelihood,
		InitialSeverity:    t.InitialSeverity,
		ResidualLikelihood: t.ResidualLikelihood,
		ResidualSeverity:   t.ResidualSeverity,
	}
}

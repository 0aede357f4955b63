package risk

import "github.com/google/uuid"

// Entry is a single row of a risk assessment: the hazard, who it affects,
// and the likelihood/severity pairs before and after control measures.
// Scores and the review classification are derived on read, never stored,
// so edits are always reflected.
type Entry struct {
	ID                 uuid.UUID `json:"id"`
	Activity           string    `json:"activity"`
	Hazard             string    `json:"hazard"`
	PersonsAtRisk      string    `json:"persons_at_risk"`
	InitialLikelihood  int       `json:"initial_likelihood"`
	InitialSeverity    int       `json:"initial_severity"`
	ControlMeasures    string    `json:"control_measures"`
	ResidualLikelihood int       `json:"residual_likelihood"`
	ResidualSeverity   int       `json:"residual_severity"`
}

// InitialScore returns likelihood×severity before control measures.
func (e *Entry) InitialScore() int {
	return e.InitialLikelihood * e.InitialSeverity
}

// ResidualScore returns likelihood×severity after control measures.
func (e *Entry) ResidualScore() int {
	return e.ResidualLikelihood * e.ResidualSeverity
}

// Review returns the classification of the residual score.
func (e *Entry) Review() ReviewLevel {
	return Classify(e.ResidualScore())
}

// NewBlankEntry creates an entry with mid-range defaults (3×3 initial,
// 2×2 residual) rather than zeros, so an unedited row never reads as a
// false "Very Low".
func NewBlankEntry() Entry {
	return Entry{
		ID:                 uuid.New(),
		InitialLikelihood:  3,
		InitialSeverity:    3,
		ResidualLikelihood: 2,
		ResidualSeverity:   2,
	}
}

// MaxResidualScore returns the highest residual score across entries,
// or 0 for an empty set.
func MaxResidualScore(entries []Entry) int {
	max := 0
	for i := range entries {
		if s := entries[i].ResidualScore(); s > max {
			max = s
		}
	}
	return max
}

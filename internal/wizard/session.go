// Package wizard implements the multi-step assembly workflow for Ramspack.
// A session exclusively owns an in-progress master/RAMS/lift-plan triple,
// gates forward movement on per-step validity, and commits the finished
// triple into the library, at which point the library becomes authoritative
// and the session's copy is a disposable working draft.
package wizard

import (
	"strings"
	"time"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/risk"
	"github.com/fieldsafe/ramspack/internal/schema"
)

// referencePattern is the compact timestamp layout for generated reference
// codes. Minute granularity only: two drafts created within the same minute
// collide. Known weakness, retained deliberately.
const referencePattern = "RAMS-20060102-1504"

// Session is an in-progress document assembly. It is driven by a single
// logical owner; concurrent mutation of the same session is not supported.
type Session struct {
	Master          masters.Master
	Document        rams.Document
	LiftPlan        liftplans.LiftPlan
	IncludeLiftPlan bool

	current Step
	now     func() time.Time
}

// NewSession creates a session with blank drafts and a freshly generated
// reference code. The clock is injectable for tests; pass nil for time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{now: now}
	s.initDrafts()
	return s
}

func (s *Session) initDrafts() {
	ts := s.now()
	s.Master = masters.NewDraft(ts)
	s.Document = rams.NewDraft(ts.Format(referencePattern), ts)
	s.LiftPlan = liftplans.NewDraft(ts)
	s.IncludeLiftPlan = false
	s.current = StepMaster
}

// Steps returns the ordered step list for the session's current settings.
func (s *Session) Steps() []Step {
	return stepList(s.IncludeLiftPlan)
}

// Current returns the step the session is positioned on.
func (s *Session) Current() Step {
	return s.current
}

// SetIncludeLiftPlan toggles the lift plan step. The ordered step list is
// recomputed; if the current step is no longer in it, the position clamps
// to the nearest remaining earlier step.
func (s *Session) SetIncludeLiftPlan(include bool) {
	if s.IncludeLiftPlan == include {
		return
	}
	s.IncludeLiftPlan = include

	if stepIndex(s.Steps(), s.current) == -1 {
		s.current = StepRAMS
	}
}

// Next validates the current step and advances to the next one. A failed
// gate leaves the position unchanged and returns the gate error. Calling
// Next on the final step is a no-op.
func (s *Session) Next() error {
	if err := s.gate(s.current); err != nil {
		return err
	}

	steps := s.Steps()
	idx := stepIndex(steps, s.current)
	if idx < 0 || idx == len(steps)-1 {
		return nil
	}

	s.current = steps[idx+1]
	return nil
}

// Back moves to the previous step without validation. Calling Back on the
// first step is a no-op.
func (s *Session) Back() {
	steps := s.Steps()
	idx := stepIndex(steps, s.current)
	if idx <= 0 {
		return
	}
	s.current = steps[idx-1]
}

// gate checks the per-step completion requirements. Failures surface as a
// single human-readable message naming the missing fields.
func (s *Session) gate(step Step) error {
	var missing []string

	switch step {
	case StepMaster:
		missing = missingFields(map[string]string{
			"project name":        s.Master.ProjectName,
			"site address":        s.Master.SiteAddress,
			"hospital name":       s.Master.HospitalName,
			"hospital directions": s.Master.HospitalDirections,
		})
	case StepRAMS:
		missing = missingFields(map[string]string{
			"title":          s.Document.Title,
			"scope of works": s.Document.ScopeOfWorks,
			"prepared by":    s.Document.PreparedBy,
		})
		if len(s.Document.Risks) == 0 {
			missing = append(missing, "at least one risk entry")
		}
	case StepLiftPlan:
		missing = missingFields(map[string]string{
			"title":            s.LiftPlan.Title,
			"crane or plant":   s.LiftPlan.CranePlant,
			"load description": s.LiftPlan.LoadDescription,
			"appointed person": s.LiftPlan.AppointedPerson,
		})
	case StepReview:
		return nil
	default:
		return ErrUnknownStep
	}

	if len(missing) > 0 {
		return &GateError{
			Step:    step,
			Message: "complete the following before continuing: " + strings.Join(missing, ", "),
		}
	}
	return nil
}

func missingFields(fields map[string]string) []string {
	// Iterate a fixed order so the gate message is stable.
	ordered := []string{
		"project name", "site address", "hospital name", "hospital directions",
		"title", "scope of works", "prepared by",
		"crane or plant", "load description", "appointed person",
	}

	var missing []string
	for _, name := range ordered {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// AddMethodStep appends a method statement step and renumbers the sequence.
func (s *Session) AddMethodStep(description string) {
	s.Document.AppendStep(description)
}

// RemoveMethodSteps removes steps by index and renumbers the remainder.
func (s *Session) RemoveMethodSteps(indices []int) {
	s.Document.RemoveSteps(indices)
}

// AddRisk instantiates a risk entry from a hazard template's defaults.
func (s *Session) AddRisk(template hazards.Template) risk.Entry {
	entry := template.Instantiate()
	s.Document.Risks = append(s.Document.Risks, entry)
	return entry
}

// AddBlankRisk inserts a risk entry with mid-range defaults.
func (s *Session) AddBlankRisk() risk.Entry {
	entry := risk.NewBlankEntry()
	s.Document.Risks = append(s.Document.Risks, entry)
	return entry
}

// AddSignature appends a timestamped signature record. Name and role must
// not be blank after trimming.
func (s *Session) AddSignature(name, role string, image []byte) error {
	var c schema.Checker
	c.Require("name", name)
	c.Require("role", role)
	if violations := c.Result(); violations != nil {
		return violations
	}

	s.Document.AppendSignature(name, role, image, s.now())
	return nil
}

// Target receives committed draft entities. Both *library.Library and
// library.System satisfy it.
type Target interface {
	UpsertMaster(m masters.Master)
	UpsertDocument(d rams.Document)
	UpsertLiftPlan(lp liftplans.LiftPlan)
}

// Commit stamps timestamps and upserts the draft entities into the library
// in master, RAMS, lift-plan order. The lift plan is cross-linked to the
// RAMS document here, not before, and only when included. Creation
// timestamps are clamped to not exceed the update timestamp, guarding
// against clock skew producing future-dated drafts.
func (s *Session) Commit(lib Target) {
	ts := s.now()

	s.Master.UpdatedAt = ts
	if s.Master.CreatedAt.After(ts) {
		s.Master.CreatedAt = ts
	}

	s.Document.UpdatedAt = ts
	if s.Document.CreatedAt.After(ts) {
		s.Document.CreatedAt = ts
	}
	s.Document.MasterID = s.Master.ID
	s.Document.RequiresLiftPlan = s.IncludeLiftPlan

	lib.UpsertMaster(s.Master)
	lib.UpsertDocument(s.Document)

	if s.IncludeLiftPlan {
		s.LiftPlan.UpdatedAt = ts
		if s.LiftPlan.CreatedAt.After(ts) {
			s.LiftPlan.CreatedAt = ts
		}
		docID := s.Document.ID
		s.LiftPlan.RAMSDocumentID = &docID
		lib.UpsertLiftPlan(s.LiftPlan)
	}
}

// Reset discards the working draft and reinitializes all three entities to
// blank drafts with a freshly generated reference code.
func (s *Session) Reset() {
	s.initDrafts()
}

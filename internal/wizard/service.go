package wizard

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/schema"
)

type service struct {
	mu      sync.Mutex
	session *Session
	lib     library.System
	logger  *slog.Logger
}

// New creates a wizard service owning a fresh session. The session is the
// single working draft; committing hands ownership of the entities to the
// library.
func New(lib library.System, logger *slog.Logger) System {
	return &service{
		session: NewSession(nil),
		lib:     lib,
		logger:  logger.With("system", "wizard"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) snapshot() State {
	return State{
		Steps:             s.session.Steps(),
		Current:           s.session.Current(),
		IncludeLiftPlan:   s.session.IncludeLiftPlan,
		Master:            s.session.Master,
		Document:          s.session.Document,
		LiftPlan:          s.session.LiftPlan,
		OverallRiskReview: s.session.Document.OverallRiskReview(),
	}
}

func (s *service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *service) Next() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.Next(); err != nil {
		return s.snapshot(), err
	}

	s.logger.Info("wizard advanced", "step", s.session.Current())
	return s.snapshot(), nil
}

func (s *service) Back() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Back()
	return s.snapshot()
}

func (s *service) SetIncludeLiftPlan(include bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetIncludeLiftPlan(include)
	s.logger.Info("lift plan inclusion set", "include", include)
	return s.snapshot()
}

func (s *service) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Reset()
	s.logger.Info("wizard reset", "reference", s.session.Document.Reference)
	return s.snapshot()
}

func (s *service) UpdateMaster(patch schema.MasterPatch) (State, error) {
	if violations := patch.Validate(); violations != nil {
		return s.State(), violations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.session.Master)
	return s.snapshot(), nil
}

func (s *service) UpdateDocument(patch schema.RAMSPatch) (State, error) {
	if violations := patch.Validate(); violations != nil {
		return s.State(), violations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.session.Document)
	return s.snapshot(), nil
}

func (s *service) UpdateLiftPlan(patch schema.LiftPlanPatch) (State, error) {
	if violations := patch.Validate(); violations != nil {
		return s.State(), violations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.session.LiftPlan)
	return s.snapshot(), nil
}

func (s *service) AddMethodStep(description string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.AddMethodStep(description)
	return s.snapshot()
}

func (s *service) RemoveMethodSteps(indices []int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.RemoveMethodSteps(indices)
	return s.snapshot()
}

func (s *service) AddRisk(templateID uuid.UUID) (State, error) {
	template, err := s.lib.FindHazardTemplate(templateID)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.session.AddRisk(*template)
	s.logger.Info("risk added from template", "template", template.Title, "entry", entry.ID)
	return s.snapshot(), nil
}

func (s *service) AddBlankRisk() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.AddBlankRisk()
	return s.snapshot()
}

func (s *service) AddSignature(name, role string, image []byte) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.AddSignature(name, role, image); err != nil {
		return s.snapshot(), err
	}
	return s.snapshot(), nil
}

// Commit hands the working draft to the library, which becomes the
// authoritative owner. The session keeps its copy as a disposable draft;
// call Reset to start a new one.
func (s *service) Commit() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Commit(s.lib)
	s.logger.Info(
		"wizard committed",
		"master", s.session.Master.ID,
		"document", s.session.Document.ID,
		"reference", s.session.Document.Reference,
		"lift_plan_included", s.session.IncludeLiftPlan,
	)
	return s.snapshot()
}

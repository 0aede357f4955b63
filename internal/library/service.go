package library

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/schema"
	"github.com/fieldsafe/ramspack/pkg/pagination"
)

type service struct {
	mu         sync.RWMutex
	lib        *Library
	store      Store
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a library service seeded with the built-in hazard templates.
// Call Load to replace the seed with persisted state.
func New(
	store Store,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &service{
		lib:        NewSeeded(),
		store:      store,
		logger:     logger.With("system", "library"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

// Load replaces the in-memory library with persisted state. On failure the
// seeded default remains in place and the error is reported upward.
func (s *service) Load(ctx context.Context) error {
	lib, err := s.store.LoadLibrary(ctx)
	if err != nil {
		s.logger.Warn("library load failed, keeping seeded default", "error", err)
		return fmt.Errorf("load library: %w", err)
	}

	if len(lib.HazardTemplates) == 0 {
		lib.HazardTemplates = hazards.Seed()
	}

	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()

	s.logger.Info(
		"library loaded",
		"masters", len(lib.Masters),
		"documents", len(lib.Documents),
		"lift_plans", len(lib.LiftPlans),
	)
	return nil
}

// Save persists an isolated snapshot of the in-memory library, so edits made
// while a save is in flight never reach the store. On failure the in-memory
// state stays authoritative and the collaborator error is reported verbatim.
func (s *service) Save(ctx context.Context) error {
	s.mu.RLock()
	snapshot := s.lib.Clone()
	s.mu.RUnlock()

	if err := s.store.SaveLibrary(ctx, snapshot); err != nil {
		s.logger.Error("library save failed", "error", err)
		return fmt.Errorf("save library: %w", err)
	}

	s.logger.Info("library saved")
	return nil
}

// pageOf filters, orders, and slices one collection page. Search is a
// case-insensitive substring match; sort fields apply in request order with
// unknown field names keeping insertion order (the sort is stable).
func pageOf[T any](
	items []T,
	page pagination.PageRequest,
	cfg pagination.Config,
	match func(item T, term string) bool,
	compare func(a, b T, field string) int,
) pagination.PageResult[T] {
	page.Normalize(cfg)

	if page.Search != nil {
		if term := strings.ToLower(strings.TrimSpace(*page.Search)); term != "" {
			filtered := make([]T, 0, len(items))
			for _, item := range items {
				if match(item, term) {
					filtered = append(filtered, item)
				}
			}
			items = filtered
		}
	}

	if len(page.Sort) > 0 {
		ordered := make([]T, len(items))
		copy(ordered, items)
		slices.SortStableFunc(ordered, func(a, b T) int {
			for _, field := range page.Sort {
				c := compare(a, b, field.Field)
				if c == 0 {
					continue
				}
				if field.Descending {
					return -c
				}
				return c
			}
			return 0
		})
		items = ordered
	}

	start := page.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + page.PageSize
	if end > len(items) {
		end = len(items)
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return pagination.NewPageResult(data, len(items), page.Page, page.PageSize)
}

func containsFold(term string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func matchTemplate(t hazards.Template, term string) bool {
	return containsFold(term, t.Category, t.Title, t.RiskTo, t.ControlMeasures)
}

func compareTemplates(a, b hazards.Template, field string) int {
	switch field {
	case "category":
		return strings.Compare(a.Category, b.Category)
	case "title":
		return strings.Compare(a.Title, b.Title)
	default:
		return 0
	}
}

func matchMaster(m masters.Master, term string) bool {
	return containsFold(term, m.ProjectName, m.SiteAddress, m.ClientName, m.ContractorName)
}

func compareMasters(a, b masters.Master, field string) int {
	switch field {
	case "project_name":
		return strings.Compare(a.ProjectName, b.ProjectName)
	case "client_name":
		return strings.Compare(a.ClientName, b.ClientName)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}

func matchDocument(d rams.Document, term string) bool {
	if containsFold(term, d.Title, d.Reference, d.ScopeOfWorks, d.PreparedBy) {
		return true
	}
	return containsFold(term, d.Tags...)
}

func compareDocuments(a, b rams.Document, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "reference":
		return strings.Compare(a.Reference, b.Reference)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}

func matchLiftPlan(lp liftplans.LiftPlan, term string) bool {
	return containsFold(term, lp.Title, lp.CranePlant, lp.LoadDescription, lp.AppointedPerson)
}

func compareLiftPlans(a, b liftplans.LiftPlan, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "category":
		return strings.Compare(string(a.Category), string(b.Category))
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return 0
	}
}

func (s *service) HazardTemplates(page pagination.PageRequest) pagination.PageResult[hazards.Template] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.lib.HazardTemplates, page, s.pagination, matchTemplate, compareTemplates)
}

func (s *service) Masters(page pagination.PageRequest) pagination.PageResult[masters.Master] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.lib.Masters, page, s.pagination, matchMaster, compareMasters)
}

func (s *service) Documents(page pagination.PageRequest) pagination.PageResult[rams.Document] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.lib.Documents, page, s.pagination, matchDocument, compareDocuments)
}

func (s *service) LiftPlans(page pagination.PageRequest) pagination.PageResult[liftplans.LiftPlan] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.lib.LiftPlans, page, s.pagination, matchLiftPlan, compareLiftPlans)
}

func (s *service) FindMaster(id uuid.UUID) (*masters.Master, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.lib.FindMaster(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *service) FindDocument(id uuid.UUID) (*rams.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.lib.FindDocument(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *service) FindLiftPlan(id uuid.UUID) (*liftplans.LiftPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lp, ok := s.lib.FindLiftPlan(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &lp, nil
}

func (s *service) LiftPlanForDocument(docID uuid.UUID) *liftplans.LiftPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lp, ok := s.lib.LiftPlanForDocument(docID)
	if !ok {
		return nil
	}
	return &lp
}

func (s *service) FindHazardTemplate(id uuid.UUID) (*hazards.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.lib.FindHazardTemplate(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *service) UpsertMaster(m masters.Master) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lib.UpsertMaster(m)
}

func (s *service) UpsertDocument(d rams.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lib.UpsertDocument(d)
}

func (s *service) UpsertLiftPlan(lp liftplans.LiftPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lib.UpsertLiftPlan(lp)
}

// PatchDocument validates a partial update and merges it onto the stored
// document. Validation failures leave the document untouched.
func (s *service) PatchDocument(id uuid.UUID, patch schema.RAMSPatch) (*rams.Document, error) {
	if violations := patch.Validate(); violations != nil {
		return nil, violations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.lib.FindDocument(id)
	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(&d)
	d.UpdatedAt = s.now()
	s.lib.UpsertDocument(d)

	s.logger.Info("document patched", "id", d.ID, "reference", d.Reference)
	return &d, nil
}

func (s *service) DeleteMaster(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.DeleteMaster(id) {
		return ErrNotFound
	}
	s.logger.Info("master deleted", "id", id)
	return nil
}

func (s *service) DeleteDocument(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.DeleteDocument(id) {
		return ErrNotFound
	}
	s.logger.Info("document deleted", "id", id)
	return nil
}

func (s *service) DeleteLiftPlan(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lib.DeleteLiftPlan(id) {
		return ErrNotFound
	}
	s.logger.Info("lift plan deleted", "id", id)
	return nil
}

// Package library implements the document library for Ramspack: the
// aggregate root holding hazard templates, master documents, RAMS documents,
// and lift plans, each independently keyed by identifier.
package library

import (
	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
)

// Library holds the four entity collections. Ordering is most-recent-first
// for display; identity is the only semantic key.
type Library struct {
	HazardTemplates []hazards.Template   `json:"hazard_templates"`
	Masters         []masters.Master     `json:"masters"`
	Documents       []rams.Document      `json:"documents"`
	LiftPlans       []liftplans.LiftPlan `json:"lift_plans"`
}

// NewSeeded creates a library pre-populated with the built-in hazard
// template set and empty document collections.
func NewSeeded() *Library {
	return &Library{
		HazardTemplates: hazards.Seed(),
		Masters:         []masters.Master{},
		Documents:       []rams.Document{},
		LiftPlans:       []liftplans.LiftPlan{},
	}
}

// Clone returns a copy whose collection slices share no backing arrays
// with the original. Mutation paths replace whole entity values, so
// element-level copies are sufficient isolation.
func (l *Library) Clone() *Library {
	return &Library{
		HazardTemplates: append([]hazards.Template(nil), l.HazardTemplates...),
		Masters:         append([]masters.Master(nil), l.Masters...),
		Documents:       append([]rams.Document(nil), l.Documents...),
		LiftPlans:       append([]liftplans.LiftPlan(nil), l.LiftPlans...),
	}
}

// upsert replaces the element with a matching identifier in place, or
// inserts the new element at the front.
func upsert[T any](list []T, id func(T) uuid.UUID, item T) []T {
	target := id(item)
	for i := range list {
		if id(list[i]) == target {
			list[i] = item
			return list
		}
	}
	return append([]T{item}, list...)
}

func find[T any](list []T, id func(T) uuid.UUID, target uuid.UUID) (T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return list[i], true
		}
	}
	var zero T
	return zero, false
}

func remove[T any](list []T, id func(T) uuid.UUID, target uuid.UUID) ([]T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func masterID(m masters.Master) uuid.UUID { return m.ID }
func documentID(d rams.Document) uuid.UUID { return d.ID }
func liftPlanID(lp liftplans.LiftPlan) uuid.UUID { return lp.ID }
func templateID(t hazards.Template) uuid.UUID { return t.ID }

// UpsertMaster inserts or replaces a master document.
func (l *Library) UpsertMaster(m masters.Master) {
	l.Masters = upsert(l.Masters, masterID, m)
}

// UpsertDocument inserts or replaces a RAMS document.
func (l *Library) UpsertDocument(d rams.Document) {
	l.Documents = upsert(l.Documents, documentID, d)
}

// UpsertLiftPlan inserts or replaces a lift plan.
func (l *Library) UpsertLiftPlan(lp liftplans.LiftPlan) {
	l.LiftPlans = upsert(l.LiftPlans, liftPlanID, lp)
}

// UpsertHazardTemplate inserts or replaces a hazard template.
func (l *Library) UpsertHazardTemplate(t hazards.Template) {
	l.HazardTemplates = upsert(l.HazardTemplates, templateID, t)
}

// FindMaster returns the master document with the given identifier.
func (l *Library) FindMaster(id uuid.UUID) (masters.Master, bool) {
	return find(l.Masters, masterID, id)
}

// FindDocument returns the RAMS document with the given identifier.
func (l *Library) FindDocument(id uuid.UUID) (rams.Document, bool) {
	return find(l.Documents, documentID, id)
}

// FindLiftPlan returns the lift plan with the given identifier.
func (l *Library) FindLiftPlan(id uuid.UUID) (liftplans.LiftPlan, bool) {
	return find(l.LiftPlans, liftPlanID, id)
}

// LiftPlanForDocument returns the lift plan referencing the given RAMS
// document, if any. Lift plan references are weak, so absence is normal.
func (l *Library) LiftPlanForDocument(docID uuid.UUID) (liftplans.LiftPlan, bool) {
	for i := range l.LiftPlans {
		ref := l.LiftPlans[i].RAMSDocumentID
		if ref != nil && *ref == docID {
			return l.LiftPlans[i], true
		}
	}
	return liftplans.LiftPlan{}, false
}

// FindHazardTemplate returns the hazard template with the given identifier.
func (l *Library) FindHazardTemplate(id uuid.UUID) (hazards.Template, bool) {
	return find(l.HazardTemplates, templateID, id)
}

// DeleteMaster removes a master document, reporting whether it existed.
func (l *Library) DeleteMaster(id uuid.UUID) bool {
	var ok bool
	l.Masters, ok = remove(l.Masters, masterID, id)
	return ok
}

// DeleteDocument removes a RAMS document, reporting whether it existed.
func (l *Library) DeleteDocument(id uuid.UUID) bool {
	var ok bool
	l.Documents, ok = remove(l.Documents, documentID, id)
	return ok
}

// DeleteLiftPlan removes a lift plan, reporting whether it existed.
func (l *Library) DeleteLiftPlan(id uuid.UUID) bool {
	var ok bool
	l.LiftPlans, ok = remove(l.LiftPlans, liftPlanID, id)
	return ok
}

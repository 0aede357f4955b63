package library_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
)

func TestNewSeeded(t *testing.T) {
	lib := library.NewSeeded()

	if len(lib.HazardTemplates) != len(hazards.Seed()) {
		t.Errorf("templates = %d, want %d", len(lib.HazardTemplates), len(hazards.Seed()))
	}
	if lib.Masters == nil || lib.Documents == nil || lib.LiftPlans == nil {
		t.Error("collections must be empty, not nil")
	}
	if len(lib.Masters)+len(lib.Documents)+len(lib.LiftPlans) != 0 {
		t.Error("seeded library carries documents")
	}
}

func TestCloneSharesNoBackingArrays(t *testing.T) {
	lib := library.NewSeeded()
	doc := rams.NewDraft("RAMS-20260110-0900", time.Now())
	doc.Title = "Original"
	lib.UpsertDocument(doc)

	clone := lib.Clone()

	doc.Title = "Amended"
	lib.UpsertDocument(doc)

	if clone.Documents[0].Title != "Original" {
		t.Errorf("clone title = %q, in-place upsert leaked into the clone",
			clone.Documents[0].Title)
	}
	if len(clone.HazardTemplates) != len(lib.HazardTemplates) {
		t.Error("clone dropped collection entries")
	}
}

func TestUpsertDocumentInsertsAtFront(t *testing.T) {
	lib := library.NewSeeded()
	now := time.Now()

	first := rams.NewDraft("RAMS-20260110-0900", now)
	second := rams.NewDraft("RAMS-20260111-0900", now)

	lib.UpsertDocument(first)
	lib.UpsertDocument(second)

	if len(lib.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(lib.Documents))
	}
	if lib.Documents[0].ID != second.ID {
		t.Error("newest document is not first")
	}
}

func TestUpsertDocumentReplacesInPlace(t *testing.T) {
	lib := library.NewSeeded()
	now := time.Now()

	a := rams.NewDraft("RAMS-20260110-0900", now)
	b := rams.NewDraft("RAMS-20260111-0900", now)
	lib.UpsertDocument(a)
	lib.UpsertDocument(b)

	a.Title = "Revised"
	lib.UpsertDocument(a)

	if len(lib.Documents) != 2 {
		t.Fatalf("documents = %d, want 2 after replace", len(lib.Documents))
	}
	if lib.Documents[1].ID != a.ID || lib.Documents[1].Title != "Revised" {
		t.Error("replacement did not keep position")
	}
}

func TestFindAndDelete(t *testing.T) {
	lib := library.NewSeeded()
	m := masters.NewDraft(time.Now())
	m.ProjectName = "Riverside Depot"
	lib.UpsertMaster(m)

	found, ok := lib.FindMaster(m.ID)
	if !ok || found.ProjectName != "Riverside Depot" {
		t.Fatalf("FindMaster = %v, %v", found, ok)
	}

	if _, ok := lib.FindMaster(uuid.New()); ok {
		t.Error("found a master that does not exist")
	}

	if !lib.DeleteMaster(m.ID) {
		t.Error("delete of existing master reported false")
	}
	if lib.DeleteMaster(m.ID) {
		t.Error("second delete reported true")
	}
}

func TestLiftPlanForDocument(t *testing.T) {
	lib := library.NewSeeded()
	now := time.Now()

	doc := rams.NewDraft("RAMS-20260112-1400", now)
	lib.UpsertDocument(doc)

	unlinked := liftplans.NewDraft(now)
	lib.UpsertLiftPlan(unlinked)

	if _, ok := lib.LiftPlanForDocument(doc.ID); ok {
		t.Error("unlinked lift plan matched")
	}

	linked := liftplans.NewDraft(now)
	docID := doc.ID
	linked.RAMSDocumentID = &docID
	lib.UpsertLiftPlan(linked)

	got, ok := lib.LiftPlanForDocument(doc.ID)
	if !ok {
		t.Fatal("linked lift plan not found")
	}
	if got.ID != linked.ID {
		t.Errorf("lift plan = %s, want %s", got.ID, linked.ID)
	}
}

func TestFindHazardTemplate(t *testing.T) {
	lib := library.NewSeeded()
	want := lib.HazardTemplates[0]

	got, ok := lib.FindHazardTemplate(want.ID)
	if !ok {
		t.Fatal("seeded template not found")
	}
	if got.Title != want.Title {
		t.Errorf("Title = %q, want %q", got.Title, want.Title)
	}
}

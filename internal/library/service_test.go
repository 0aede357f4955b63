package library_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/schema"
	"github.com/fieldsafe/ramspack/pkg/pagination"

	"github.com/google/uuid"
)

type fakeStore struct {
	lib     *library.Library
	loadErr error
	saveErr error
	saved   *library.Library
}

func (f *fakeStore) LoadLibrary(ctx context.Context) (*library.Library, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.lib, nil
}

func (f *fakeStore) SaveLibrary(ctx context.Context, lib *library.Library) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = lib
	return nil
}

func newService(t *testing.T, store library.Store) library.System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return library.New(store, logger, pagination.Config{
		DefaultPageSize: 10,
		MaxPageSize:     50,
	})
}

func TestLoadReplacesSeed(t *testing.T) {
	persisted := library.NewSeeded()
	doc := rams.NewDraft("RAMS-20260110-0900", time.Now())
	persisted.UpsertDocument(doc)

	sys := newService(t, &fakeStore{lib: persisted})

	if err := sys.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	found, err := sys.FindDocument(doc.ID)
	if err != nil {
		t.Fatalf("FindDocument() = %v", err)
	}
	if found.Reference != "RAMS-20260110-0900" {
		t.Errorf("Reference = %q", found.Reference)
	}
}

func TestLoadFailureKeepsSeed(t *testing.T) {
	sys := newService(t, &fakeStore{loadErr: errors.New("connection refused")})

	err := sys.Load(context.Background())
	if err == nil {
		t.Fatal("Load() = nil, want error")
	}

	page := sys.HazardTemplates(pagination.PageRequest{})
	if page.Total == 0 {
		t.Error("seeded templates lost after failed load")
	}
}

func TestLoadReseedsEmptyTemplates(t *testing.T) {
	persisted := &library.Library{}
	sys := newService(t, &fakeStore{lib: persisted})

	if err := sys.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	page := sys.HazardTemplates(pagination.PageRequest{})
	if page.Total == 0 {
		t.Error("empty template collection not reseeded")
	}
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	sys := newService(t, store)

	doc := rams.NewDraft("RAMS-20260111-1000", time.Now())
	sys.UpsertDocument(doc)

	if err := sys.Save(context.Background()); err == nil {
		t.Fatal("Save() = nil, want error")
	}

	if _, err := sys.FindDocument(doc.ID); err != nil {
		t.Error("document lost after failed save")
	}
}

func TestSavePersistsSnapshot(t *testing.T) {
	store := &fakeStore{}
	sys := newService(t, store)

	doc := rams.NewDraft("RAMS-20260111-1000", time.Now())
	sys.UpsertDocument(doc)

	if err := sys.Save(context.Background()); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if store.saved == nil {
		t.Fatal("store received no library")
	}
	if len(store.saved.Documents) != 1 {
		t.Errorf("saved documents = %d, want 1", len(store.saved.Documents))
	}
}

// blockingStore parks inside SaveLibrary until released, handing the
// in-flight snapshot to the test first.
type blockingStore struct {
	captured chan *library.Library
	release  chan struct{}
}

func (b *blockingStore) LoadLibrary(ctx context.Context) (*library.Library, error) {
	return library.NewSeeded(), nil
}

func (b *blockingStore) SaveLibrary(ctx context.Context, lib *library.Library) error {
	b.captured <- lib
	<-b.release
	return nil
}

func TestSaveSnapshotIsolatedFromConcurrentEdits(t *testing.T) {
	store := &blockingStore{
		captured: make(chan *library.Library, 1),
		release:  make(chan struct{}),
	}
	sys := newService(t, store)

	doc := rams.NewDraft("RAMS-20260111-1000", time.Now())
	doc.Title = "Original"
	sys.UpsertDocument(doc)

	done := make(chan error, 1)
	go func() {
		done <- sys.Save(context.Background())
	}()

	snapshot := <-store.captured

	title := "Amended"
	if _, err := sys.PatchDocument(doc.ID, schema.RAMSPatch{Title: &title}); err != nil {
		t.Fatalf("PatchDocument() = %v", err)
	}

	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("Save() = %v", err)
	}

	if snapshot.Documents[0].Title != "Original" {
		t.Errorf("snapshot title = %q, concurrent edit reached the in-flight save",
			snapshot.Documents[0].Title)
	}
}

func TestDocumentsPagination(t *testing.T) {
	sys := newService(t, &fakeStore{})
	now := time.Now()
	for i := 0; i < 25; i++ {
		sys.UpsertDocument(rams.NewDraft("RAMS-20260112-1400", now))
	}

	tests := []struct {
		name      string
		req       pagination.PageRequest
		wantCount int
		wantPage  int
		wantPages int
	}{
		{"first page default size", pagination.PageRequest{}, 10, 1, 3},
		{"explicit page", pagination.PageRequest{Page: 3, PageSize: 10}, 5, 3, 3},
		{"past the end", pagination.PageRequest{Page: 9, PageSize: 10}, 0, 9, 3},
		{"oversized clamped", pagination.PageRequest{Page: 1, PageSize: 500}, 25, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := sys.Documents(tt.req)

			if len(page.Data) != tt.wantCount {
				t.Errorf("len(Data) = %d, want %d", len(page.Data), tt.wantCount)
			}
			if page.Total != 25 {
				t.Errorf("Total = %d, want 25", page.Total)
			}
			if page.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestDocumentsSearch(t *testing.T) {
	sys := newService(t, &fakeStore{})
	now := time.Now()

	roof := rams.NewDraft("RAMS-20260110-0900", now)
	roof.Title = "Flat roof replacement"
	sys.UpsertDocument(roof)

	steel := rams.NewDraft("RAMS-20260111-0900", now)
	steel.Title = "Steel frame erection"
	steel.Tags = []string{"lifting"}
	sys.UpsertDocument(steel)

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"title match case-insensitive", "ROOF", 1},
		{"tag match", "lifting", 1},
		{"reference match", "RAMS-20260111", 1},
		{"no match", "asbestos", 0},
		{"blank search keeps everything", "   ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := sys.Documents(pagination.PageRequest{Search: &tt.search})

			if page.Total != tt.want {
				t.Errorf("Total = %d, want %d", page.Total, tt.want)
			}
			if len(page.Data) != tt.want {
				t.Errorf("len(Data) = %d, want %d", len(page.Data), tt.want)
			}
		})
	}
}

func TestDocumentsSort(t *testing.T) {
	sys := newService(t, &fakeStore{})
	now := time.Now()

	for _, title := range []string{"Bravo", "Alpha", "Charlie"} {
		d := rams.NewDraft("RAMS-20260110-0900", now)
		d.Title = title
		sys.UpsertDocument(d)
	}

	titlesOf := func(page pagination.PageResult[rams.Document]) []string {
		titles := make([]string, len(page.Data))
		for i, d := range page.Data {
			titles[i] = d.Title
		}
		return titles
	}

	asc := sys.Documents(pagination.PageRequest{Sort: pagination.ParseSortFields("title")})
	if got := titlesOf(asc); !reflect.DeepEqual(got, []string{"Alpha", "Bravo", "Charlie"}) {
		t.Errorf("ascending = %v", got)
	}

	desc := sys.Documents(pagination.PageRequest{Sort: pagination.ParseSortFields("-title")})
	if got := titlesOf(desc); !reflect.DeepEqual(got, []string{"Charlie", "Bravo", "Alpha"}) {
		t.Errorf("descending = %v", got)
	}

	// Unknown fields keep insertion order (most recent first).
	unknown := sys.Documents(pagination.PageRequest{Sort: pagination.ParseSortFields("nonsense")})
	if got := titlesOf(unknown); !reflect.DeepEqual(got, []string{"Charlie", "Alpha", "Bravo"}) {
		t.Errorf("unknown field = %v", got)
	}
}

func TestDocumentsSearchWithSortAndPaging(t *testing.T) {
	sys := newService(t, &fakeStore{})
	now := time.Now()

	for _, title := range []string{"Roof A", "Roof B", "Roof C", "Scaffold"} {
		d := rams.NewDraft("RAMS-20260110-0900", now)
		d.Title = title
		sys.UpsertDocument(d)
	}

	term := "roof"
	page := sys.Documents(pagination.PageRequest{
		Page:     2,
		PageSize: 2,
		Search:   &term,
		Sort:     pagination.ParseSortFields("title"),
	})

	if page.Total != 3 {
		t.Errorf("Total = %d, want 3 (filtered)", page.Total)
	}
	if len(page.Data) != 1 || page.Data[0].Title != "Roof C" {
		t.Errorf("Data = %v, want [Roof C]", page.Data)
	}
	if page.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page.TotalPages)
	}
}

func TestPatchDocument(t *testing.T) {
	sys := newService(t, &fakeStore{})
	doc := rams.NewDraft("RAMS-20260113-0800", time.Now())
	doc.Title = "Original"
	sys.UpsertDocument(doc)

	title := "Amended"
	patched, err := sys.PatchDocument(doc.ID, schema.RAMSPatch{Title: &title})
	if err != nil {
		t.Fatalf("PatchDocument() = %v", err)
	}
	if patched.Title != "Amended" {
		t.Errorf("Title = %q", patched.Title)
	}
	if !patched.UpdatedAt.After(doc.UpdatedAt) && !patched.UpdatedAt.Equal(doc.UpdatedAt) {
		t.Error("UpdatedAt not stamped")
	}
}

func TestPatchDocumentValidationLeavesDocumentUntouched(t *testing.T) {
	sys := newService(t, &fakeStore{})
	doc := rams.NewDraft("RAMS-20260113-0800", time.Now())
	doc.Title = "Original"
	sys.UpsertDocument(doc)

	blank := ""
	_, err := sys.PatchDocument(doc.ID, schema.RAMSPatch{Title: &blank})

	var violations schema.Violations
	if !errors.As(err, &violations) {
		t.Fatalf("err = %v, want Violations", err)
	}

	current, findErr := sys.FindDocument(doc.ID)
	if findErr != nil {
		t.Fatalf("FindDocument() = %v", findErr)
	}
	if current.Title != "Original" {
		t.Errorf("Title = %q, document mutated by failed patch", current.Title)
	}
}

func TestPatchDocumentNotFound(t *testing.T) {
	sys := newService(t, &fakeStore{})

	title := "Amended"
	_, err := sys.PatchDocument(uuid.New(), schema.RAMSPatch{Title: &title})
	if !errors.Is(err, library.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	sys := newService(t, &fakeStore{})
	doc := rams.NewDraft("RAMS-20260114-0800", time.Now())
	sys.UpsertDocument(doc)

	if err := sys.DeleteDocument(doc.ID); err != nil {
		t.Errorf("DeleteDocument() = %v", err)
	}
	if err := sys.DeleteDocument(doc.ID); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", library.ErrNotFound, 404},
		{"invalid", library.ErrInvalid, 400},
		{"violations", schema.Violations{{Field: "title"}}, 422},
		{"unknown", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := library.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

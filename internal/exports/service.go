package exports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fieldsafe/ramspack/internal/layout"
	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/render"
	"github.com/fieldsafe/ramspack/pkg/storage"
)

type service struct {
	library     library.System
	renderer    render.System
	blobs       storage.System
	logger      *slog.Logger
	maxListSize int32
	now         func() time.Time
}

// New creates an export service over the library, renderer, and blob store.
func New(
	lib library.System,
	renderer render.System,
	blobs storage.System,
	logger *slog.Logger,
	maxListSize int32,
) System {
	return &service{
		library:     lib,
		renderer:    renderer,
		blobs:       blobs,
		logger:      logger.With("system", "exports"),
		maxListSize: maxListSize,
		now:         time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.maxListSize)
}

// Export renders a single document and uploads the artifact. The layout is
// rebuilt from current library state on every call.
func (s *service) Export(ctx context.Context, docID uuid.UUID) (*Export, error) {
	doc, err := s.library.FindDocument(docID)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, err)
	}

	master, err := s.library.FindMaster(doc.MasterID)
	if err != nil {
		return nil, fmt.Errorf("master %s for document %s: %w", doc.MasterID, docID, err)
	}

	input := layout.Input{
		Master:   *master,
		Document: *doc,
		IssuedOn: s.now(),
	}
	if doc.RequiresLiftPlan {
		input.LiftPlan = s.library.LiftPlanForDocument(docID)
	}

	artifact, err := s.renderer.Render(ctx, layout.Build(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	key := artifactKey(doc.Reference)
	if err := s.blobs.Upload(ctx, key, bytes.NewReader(artifact.Data), artifact.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	s.logger.Info(
		"document exported",
		"document_id", docID,
		"reference", doc.Reference,
		"key", key,
		"pages", artifact.PageCount,
	)

	return &Export{
		DocumentID:  docID,
		Reference:   doc.Reference,
		Key:         key,
		PageCount:   artifact.PageCount,
		SizeBytes:   artifact.SizeBytes,
		ContentType: artifact.ContentType,
		ExportedAt:  s.now(),
	}, nil
}

// ExportBatch exports documents concurrently with bounded parallelism.
// Individual failures do not abort the batch; each is reported against its
// document id with the collaborator message preserved.
func (s *service) ExportBatch(ctx context.Context, docIDs []uuid.UUID) (*BatchResult, error) {
	if len(docIDs) == 0 {
		return nil, fmt.Errorf("%w: no document ids", ErrInvalid)
	}

	var mu sync.Mutex
	result := &BatchResult{
		Exports: make([]Export, 0, len(docIDs)),
		Failed:  map[string]string{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(docIDs)))

	for _, id := range docIDs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			exp, err := s.Export(gctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id.String()] = err.Error()
				return nil
			}
			result.Exports = append(result.Exports, *exp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(result.Failed) == 0 {
		result.Failed = nil
	}

	s.logger.Info(
		"batch export complete",
		"requested", len(docIDs),
		"exported", len(result.Exports),
		"failed", len(docIDs)-len(result.Exports),
	)
	return result, nil
}

// OpenArtifact streams a previously exported artifact. The caller must
// close the reader.
func (s *service) OpenArtifact(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.blobs.Download(ctx, key)
}

// ListArtifacts returns one page of stored artifact metadata.
func (s *service) ListArtifacts(ctx context.Context, marker string, maxResults int32) (*storage.ListResult, error) {
	return s.blobs.List(ctx, "rams/", marker, maxResults)
}

func artifactKey(reference string) string {
	return fmt.Sprintf("rams/%s.pdf", reference)
}

func workerCount(jobs int) int {
	return max(min(runtime.NumCPU(), jobs), 1)
}

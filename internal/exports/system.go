// Package exports produces issued PDF artifacts from library documents.
// An export assembles the document's master and optional lift plan, builds
// the presentation layout, renders it, and stores the artifact in blob
// storage under the document's reference code.
package exports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/pkg/storage"
)

// Export records a completed export.
type Export struct {
	DocumentID  uuid.UUID `json:"document_id"`
	Reference   string    `json:"reference"`
	Key         string    `json:"key"`
	PageCount   int       `json:"page_count"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	ExportedAt  time.Time `json:"exported_at"`
}

// BatchResult pairs per-document outcomes for a batch export. Failed
// entries carry the collaborator error message verbatim.
type BatchResult struct {
	Exports []Export          `json:"exports"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// System defines the public contract for export operations.
type System interface {
	Handler() *Handler

	Export(ctx context.Context, docID uuid.UUID) (*Export, error)
	ExportBatch(ctx context.Context, docIDs []uuid.UUID) (*BatchResult, error)
	OpenArtifact(ctx context.Context, key string) (io.ReadCloser, error)
	ListArtifacts(ctx context.Context, marker string, maxResults int32) (*storage.ListResult, error)
}

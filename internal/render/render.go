// Package render implements the export collaborator for Ramspack. It
// consumes a layout document and produces a fixed-layout PDF artifact via
// pdfcpu's declarative page description format. Renderer errors surface
// verbatim; the core never masks or retries them.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/fieldsafe/ramspack/internal/layout"
)

// ContentTypePDF is the media type of rendered artifacts.
const ContentTypePDF = "application/pdf"

// Artifact is the binary output of a render.
type Artifact struct {
	Data        []byte `json:"-"`
	PageCount   int    `json:"page_count"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// System renders layout documents into binary artifacts.
type System interface {
	Render(ctx context.Context, doc layout.Document) (*Artifact, error)
}

type pdfRenderer struct {
	logger *slog.Logger
}

// New creates a PDF renderer.
func New(logger *slog.Logger) System {
	return &pdfRenderer{logger: logger.With("system", "render")}
}

func (r *pdfRenderer) Render(ctx context.Context, doc layout.Document) (*Artifact, error) {
	description, err := json.Marshal(describe(doc))
	if err != nil {
		return nil, fmt.Errorf("describe layout document: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(description), &out, nil); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	count, err := api.PageCount(bytes.NewReader(out.Bytes()), nil)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}

	r.logger.Info(
		"document rendered",
		"layout_id", doc.ID,
		"pages", count,
		"bytes", out.Len(),
	)

	return &Artifact{
		Data:        out.Bytes(),
		PageCount:   count,
		ContentType: ContentTypePDF,
		SizeBytes:   int64(out.Len()),
	}, nil
}

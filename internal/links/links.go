// Package links implements public share links for exported documents.
// A link is an opaque token resolving to a stored artifact. Token records
// live in blob storage alongside the artifacts, so links survive restarts
// and revocation is a single blob delete.
package links

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/exports"
	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/pkg/storage"
)

// ErrInvalid indicates a malformed link request.
var ErrInvalid = errors.New("invalid link request")

// Link is a public handle to an exported artifact.
type Link struct {
	Token      uuid.UUID `json:"token"`
	DocumentID uuid.UUID `json:"document_id"`
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

// System defines the public contract for share link operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, docID uuid.UUID) (*Link, error)
	Open(ctx context.Context, token uuid.UUID) (io.ReadCloser, error)
	Revoke(ctx context.Context, token uuid.UUID) error
}

// MapHTTPStatus translates link errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return exports.MapHTTPStatus(err)
	}
}

type service struct {
	exports exports.System
	blobs   storage.System
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a share link service over the export system and blob store.
func New(exp exports.System, blobs storage.System, logger *slog.Logger) System {
	return &service{
		exports: exp,
		blobs:   blobs,
		logger:  logger.With("system", "links"),
		now:     time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Create exports the document and publishes a token record pointing at the
// artifact. Each call mints a fresh token; existing links stay valid.
func (s *service) Create(ctx context.Context, docID uuid.UUID) (*Link, error) {
	exp, err := s.exports.Export(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("export for link: %w", err)
	}

	link := Link{
		Token:      uuid.New(),
		DocumentID: docID,
		Key:        exp.Key,
		CreatedAt:  s.now(),
	}
	link.URL = "/links/" + link.Token.String()

	record, err := json.Marshal(link)
	if err != nil {
		return nil, fmt.Errorf("encode link record: %w", err)
	}

	if err := s.blobs.Upload(ctx, tokenKey(link.Token), bytes.NewReader(record), "application/json"); err != nil {
		return nil, fmt.Errorf("publish link record: %w", err)
	}

	s.logger.Info("share link created", "token", link.Token, "document_id", docID)
	return &link, nil
}

// Open resolves a token and streams the linked artifact. The caller must
// close the reader.
func (s *service) Open(ctx context.Context, token uuid.UUID) (io.ReadCloser, error) {
	record, err := s.blobs.Download(ctx, tokenKey(token))
	if err != nil {
		return nil, err
	}
	defer record.Close()

	var link Link
	if err := json.NewDecoder(record).Decode(&link); err != nil {
		return nil, fmt.Errorf("decode link record: %w", err)
	}

	return s.blobs.Download(ctx, link.Key)
}

// Revoke deletes the token record. The underlying artifact stays in place
// for authenticated access.
func (s *service) Revoke(ctx context.Context, token uuid.UUID) error {
	if err := s.blobs.Delete(ctx, tokenKey(token)); err != nil {
		return err
	}
	s.logger.Info("share link revoked", "token", token)
	return nil
}

func tokenKey(token uuid.UUID) string {
	return fmt.Sprintf("links/%s.json", token)
}

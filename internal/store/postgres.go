// Package store implements the persistence collaborator for Ramspack.
// The library contract is whole-state load/save: each collection is stored
// as ordered JSONB rows so display ordering survives a round trip. Row
// shape is an implementation detail of this collaborator; the core never
// depends on it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fieldsafe/ramspack/internal/hazards"
	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/pkg/repository"
)

type postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a Postgres-backed library store.
func New(db *sql.DB, logger *slog.Logger) library.Store {
	return &postgres{
		db:     db,
		logger: logger.With("system", "store"),
	}
}

func (p *postgres) LoadLibrary(ctx context.Context) (*library.Library, error) {
	templates, err := loadCollection[hazards.Template](ctx, p.db, "hazard_templates")
	if err != nil {
		return nil, fmt.Errorf("load hazard templates: %w", err)
	}

	msts, err := loadCollection[masters.Master](ctx, p.db, "master_documents")
	if err != nil {
		return nil, fmt.Errorf("load master documents: %w", err)
	}

	docs, err := loadCollection[rams.Document](ctx, p.db, "rams_documents")
	if err != nil {
		return nil, fmt.Errorf("load rams documents: %w", err)
	}

	plans, err := loadCollection[liftplans.LiftPlan](ctx, p.db, "lift_plans")
	if err != nil {
		return nil, fmt.Errorf("load lift plans: %w", err)
	}

	p.logger.Info(
		"library loaded from store",
		"hazard_templates", len(templates),
		"masters", len(msts),
		"documents", len(docs),
		"lift_plans", len(plans),
	)

	return &library.Library{
		HazardTemplates: templates,
		Masters:         msts,
		Documents:       docs,
		LiftPlans:       plans,
	}, nil
}

// SaveLibrary replaces all persisted collections with the given snapshot in
// one transaction, so a failed save never leaves partial state behind.
func (p *postgres) SaveLibrary(ctx context.Context, lib *library.Library) error {
	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		if err := saveCollection(ctx, tx, "hazard_templates", lib.HazardTemplates, func(t hazards.Template) string { return t.ID.String() }); err != nil {
			return struct{}{}, err
		}
		if err := saveCollection(ctx, tx, "master_documents", lib.Masters, func(m masters.Master) string { return m.ID.String() }); err != nil {
			return struct{}{}, err
		}
		if err := saveCollection(ctx, tx, "rams_documents", lib.Documents, func(d rams.Document) string { return d.ID.String() }); err != nil {
			return struct{}{}, err
		}
		if err := saveCollection(ctx, tx, "lift_plans", lib.LiftPlans, func(lp liftplans.LiftPlan) string { return lp.ID.String() }); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return fmt.Errorf("save library: %w", err)
	}

	p.logger.Info("library saved to store")
	return nil
}

func loadCollection[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	q := fmt.Sprintf(
		"SELECT payload FROM %s ORDER BY position ASC",
		table,
	)

	return repository.QueryMany(ctx, db, q, nil, func(s repository.Scanner) (T, error) {
		var (
			raw  []byte
			item T
		)
		if err := s.Scan(&raw); err != nil {
			return item, err
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return item, fmt.Errorf("decode %s payload: %w", table, err)
		}
		return item, nil
	})
}

func saveCollection[T any](ctx context.Context, tx *sql.Tx, table string, items []T, id func(T) string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	insert := fmt.Sprintf(
		"INSERT INTO %s (id, position, payload) VALUES ($1, $2, $3)",
		table,
	)

	for i, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, insert, id(item), i, payload); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	return nil
}

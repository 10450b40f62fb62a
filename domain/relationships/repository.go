package relationships

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/pgutils"
)

// Repository is the Postgres-backed Store
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new relationships repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("relationships.repo")),
	}
}

func (r *Repository) Insert(ctx context.Context, rel *Relationship) error {
	_, err := r.db.NewInsert().
		Model(rel).
		Exec(ctx)

	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrConflict.WithMessage("A relationship already exists for this object pair")
		}
		r.log.Error("failed to insert relationship", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, rel *Relationship) error {
	_, err := r.db.NewUpdate().
		Model(rel).
		WherePK().
		Where("project_id = ?", rel.ProjectID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to update relationship", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, projectID, id uuid.UUID) (bool, error) {
	result, err := r.db.NewDelete().
		Model((*Relationship)(nil)).
		Where("id = ?", id).
		Where("project_id = ?", projectID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete relationship", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count > 0, nil
}

func (r *Repository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*Relationship, error) {
	rel := new(Relationship)
	err := r.db.NewSelect().
		Model(rel).
		Where("r.id = ?", id).
		Where("r.project_id = ?", projectID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get relationship", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rel, nil
}

func (r *Repository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Relationship, error) {
	rels := []*Relationship{}
	err := r.db.NewSelect().
		Model(&rels).
		Where("r.project_id = ?", projectID).
		Scan(ctx)

	if err != nil {
		r.log.Error("failed to list relationships", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rels, nil
}

func (r *Repository) Search(ctx context.Context, projectID uuid.UUID, params SearchParams) ([]*Relationship, int, error) {
	rels := []*Relationship{}
	q := r.db.NewSelect().
		Model(&rels).
		Where("r.project_id = ?", projectID)

	if params.SourceID != nil {
		q = q.Where("r.source_id = ?", *params.SourceID)
	}
	if params.TargetID != nil {
		q = q.Where("r.target_id = ?", *params.TargetID)
	}
	if params.Cardinality != nil {
		q = q.Where("r.cardinality = ?", *params.Cardinality)
	}
	if params.Strength != nil {
		q = q.Where("r.strength = ?", *params.Strength)
	}
	if params.Bidirectional != nil {
		q = q.Where("r.bidirectional = ?", *params.Bidirectional)
	}

	// ScanAndCount applies the count to the filter set, not the page window
	total, err := q.
		Order("r.created_at ASC", "r.id ASC").
		Offset(params.Offset).
		Limit(params.Limit).
		ScanAndCount(ctx)

	if err != nil {
		r.log.Error("failed to search relationships", logger.Error(err))
		return nil, 0, apperror.ErrDatabase.WithInternal(err)
	}

	return rels, total, nil
}

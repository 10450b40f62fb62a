package objects

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

// NewRepository creates a new objects repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("objects.repo")),
	}
}

func (r *Repository) Insert(ctx context.Context, obj *Object) error {
	_, err := r.db.NewInsert().
		Model(obj).
		Exec(ctx)

	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrConflict.WithMessage("An object with this name already exists in the project")
		}
		r.log.Error("failed to insert object", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, obj *Object) error {
	_, err := r.db.NewUpdate().
		Model(obj).
		WherePK().
		Where("project_id = ?", obj.ProjectID).
		Exec(ctx)

	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrConflict.WithMessage("An object with this name already exists in the project")
		}
		r.log.Error("failed to update object", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, projectID, id uuid.UUID) (bool, error) {
	result, err := r.db.NewDelete().
		Model((*Object)(nil)).
		Where("id = ?", id).
		Where("project_id = ?", projectID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete object", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count > 0, nil
}

func (r *Repository) GetByID(ctx context.Context, projectID, id uuid.UUID) (*Object, error) {
	obj := new(Object)
	err := r.db.NewSelect().
		Model(obj).
		Where("o.id = ?", id).
		Where("o.project_id = ?", projectID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get object", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return obj, nil
}

func (r *Repository) List(ctx context.Context, projectID uuid.UUID) ([]*Object, error) {
	objs := []*Object{}
	err := r.db.NewSelect().
		Model(&objs).
		Where("o.project_id = ?", projectID).
		Order("o.name ASC", "o.id ASC").
		Scan(ctx)

	if err != nil {
		r.log.Error("failed to list objects", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return objs, nil
}

func (r *Repository) Exists(ctx context.Context, projectID, id uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Object)(nil)).
		Where("o.id = ?", id).
		Where("o.project_id = ?", projectID).
		Exists(ctx)

	if err != nil {
		r.log.Error("failed to check object existence", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	return exists, nil
}

package locks

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/nomgrid/nomgrid/internal/database"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/pgutils"
)

// Repository is the Postgres-backed Store
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new locks repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("locks.repo")),
	}
}

// Insert atomically claims the pair. Any expired row for the pair is removed
// in the same transaction so the unique index on (project_id, source_id,
// target_id) only ever rejects a live competitor. The index turns racing
// inserts into exactly one winner; 23505 from the loser maps to ErrCellLocked.
func (r *Repository) Insert(ctx context.Context, lock *Lock, now time.Time) error {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		r.log.Error("failed to begin lock transaction", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.NewDelete().
		Model((*Lock)(nil)).
		Where("project_id = ?", lock.ProjectID).
		Where("source_id = ?", lock.SourceID).
		Where("target_id = ?", lock.TargetID).
		Where("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to clear expired lock", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	_, err = tx.NewInsert().
		Model(lock).
		Exec(ctx)
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrCellLocked
		}
		r.log.Error("failed to insert lock", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	if err := tx.Commit(); err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.ErrCellLocked
		}
		r.log.Error("failed to commit lock transaction", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) DeleteByIDAndHolder(ctx context.Context, id, holderID uuid.UUID) (bool, error) {
	result, err := r.db.NewDelete().
		Model((*Lock)(nil)).
		Where("id = ?", id).
		Where("holder_id = ?", holderID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete lock", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count > 0, nil
}

func (r *Repository) FindActiveByPair(ctx context.Context, projectID uuid.UUID, pair Pair, now time.Time) (*Lock, error) {
	lock := new(Lock)
	err := r.db.NewSelect().
		Model(lock).
		Where("l.project_id = ?", projectID).
		Where("l.source_id = ?", pair.SourceID).
		Where("l.target_id = ?", pair.TargetID).
		Where("l.expires_at > ?", now).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to find lock by pair", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return lock, nil
}

func (r *Repository) ListActive(ctx context.Context, projectID uuid.UUID, now time.Time) ([]*Lock, error) {
	locks := []*Lock{}
	err := r.db.NewSelect().
		Model(&locks).
		Where("l.project_id = ?", projectID).
		Where("l.expires_at > ?", now).
		Order("l.acquired_at ASC").
		Scan(ctx)

	if err != nil {
		r.log.Error("failed to list active locks", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return locks, nil
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*Lock)(nil)).
		Where("expires_at <= ?", now).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to sweep expired locks", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count, nil
}

package presence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// Repository is the Postgres-backed Store
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new presence repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("presence.repo")),
	}
}

// Upsert creates or overwrites the (project, user) record
func (r *Repository) Upsert(ctx context.Context, p *Presence) error {
	_, err := r.db.NewInsert().
		Model(p).
		On("CONFLICT (project_id, user_id) DO UPDATE").
		Set("session_id = EXCLUDED.session_id").
		Set("activity = EXCLUDED.activity").
		Set("viewing_object_id = EXCLUDED.viewing_object_id").
		Set("row_index = EXCLUDED.row_index").
		Set("col_index = EXCLUDED.col_index").
		Set("last_seen_at = EXCLUDED.last_seen_at").
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to upsert presence", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func (r *Repository) ListSeenSince(ctx context.Context, projectID uuid.UUID, cutoff time.Time) ([]*Presence, error) {
	records := []*Presence{}
	err := r.db.NewSelect().
		Model(&records).
		Where("p.project_id = ?", projectID).
		Where("p.last_seen_at > ?", cutoff).
		Scan(ctx)

	if err != nil {
		r.log.Error("failed to list presence", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return records, nil
}

func (r *Repository) DeleteByUser(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	result, err := r.db.NewDelete().
		Model((*Presence)(nil)).
		Where("project_id = ?", projectID).
		Where("user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete presence", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count > 0, nil
}

func (r *Repository) DeleteSeenBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*Presence)(nil)).
		Where("last_seen_at <= ?", cutoff).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to sweep stale presence", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	count, _ := result.RowsAffected()
	return count, nil
}

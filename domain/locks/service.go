package locks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/metrics"
	"github.com/nomgrid/nomgrid/pkg/tracing"
)

// Service is the lock manager. It grants short-lived exclusive locks on
// matrix cells, one unexpired lock per pair.
type Service struct {
	store         Store
	grantDuration time.Duration
	log           *slog.Logger
	now           func() time.Time
}

// NewService creates a new lock service
func NewService(store Store, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		store:         store,
		grantDuration: cfg.Collab.LockGrantDuration,
		log:           log.With(logger.Scope("locks.svc")),
		now:           time.Now,
	}
}

// Acquire claims the pair for holder until now + grant duration. Returns
// ErrCellLocked when an unexpired lock already exists, including one held by
// the same holder: re-acquire is not a renewal, callers extend a claim by
// release-then-acquire and accept the brief unlocked gap.
func (s *Service) Acquire(ctx context.Context, projectID, holderID uuid.UUID, sessionID string, pair Pair, kind string) (*Lock, error) {
	ctx, span := tracing.Start(ctx, "locks.acquire",
		attribute.String("nom.project.id", projectID.String()),
	)
	defer span.End()

	if kind == "" {
		kind = KindEdit
	}
	if !ValidKind(kind) {
		return nil, apperror.ErrValidation.WithMessage("kind must be one of: edit, view, bulk")
	}

	now := s.now().UTC()
	lock := &Lock{
		ID:         uuid.New(),
		ProjectID:  projectID,
		SourceID:   pair.SourceID,
		TargetID:   pair.TargetID,
		HolderID:   holderID,
		SessionID:  sessionID,
		Kind:       kind,
		AcquiredAt: now,
		ExpiresAt:  now.Add(s.grantDuration),
	}

	if err := s.store.Insert(ctx, lock, now); err != nil {
		if apperror.IsConflict(err) {
			metrics.LockAcquisitions.WithLabelValues("conflict").Inc()
			s.log.Debug("lock acquisition conflict",
				slog.String("project_id", projectID.String()),
				slog.String("source_id", pair.SourceID.String()),
				slog.String("target_id", pair.TargetID.String()),
			)
		}
		return nil, err
	}

	metrics.LockAcquisitions.WithLabelValues("granted").Inc()
	s.log.Debug("lock acquired",
		slog.String("lock_id", lock.ID.String()),
		slog.String("holder_id", holderID.String()),
	)

	return lock, nil
}

// Release removes the lock if holder matches. A missing lock or a non-holder
// caller yields false, not an error.
func (s *Service) Release(ctx context.Context, lockID, holderID uuid.UUID) (bool, error) {
	released, err := s.store.DeleteByIDAndHolder(ctx, lockID, holderID)
	if err != nil {
		return false, err
	}

	if released {
		metrics.LockReleases.WithLabelValues("released").Inc()
	} else {
		metrics.LockReleases.WithLabelValues("noop").Inc()
	}

	return released, nil
}

// IsLocked returns the unexpired lock on the pair, or nil. Expired rows are
// filtered at read time, a sweep is never needed for a correct answer.
func (s *Service) IsLocked(ctx context.Context, projectID uuid.UUID, pair Pair) (*Lock, error) {
	return s.store.FindActiveByPair(ctx, projectID, pair, s.now().UTC())
}

// ListActive returns all unexpired locks in the project
func (s *Service) ListActive(ctx context.Context, projectID uuid.UUID) ([]*Lock, error) {
	return s.store.ListActive(ctx, projectID, s.now().UTC())
}

// SweepExpired physically reclaims expired lock rows. Zero reclaimed is
// success.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.store.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}

	metrics.LocksSwept.Add(float64(count))
	if count > 0 {
		s.log.Info("swept expired locks", slog.Int64("count", count))
	} else {
		s.log.Debug("no expired locks to sweep")
	}

	return count, nil
}

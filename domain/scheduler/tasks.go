package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// LockSweepTask physically reclaims expired cell locks. Reads never depend
// on it, expiry is filtered at every read site; the sweep just keeps the
// table small.
type LockSweepTask struct {
	locks *locks.Service
	log   *slog.Logger
}

// NewLockSweepTask creates a new lock sweep task
func NewLockSweepTask(lockSvc *locks.Service, log *slog.Logger) *LockSweepTask {
	return &LockSweepTask{
		locks: lockSvc,
		log:   log.With(logger.Scope("scheduler.lock_sweep")),
	}
}

// Run executes the lock sweep
func (t *LockSweepTask) Run(ctx context.Context) error {
	start := time.Now()

	count, err := t.locks.SweepExpired(ctx)
	if err != nil {
		t.log.Error("lock sweep failed", logger.Error(err))
		return err
	}

	if count > 0 {
		t.log.Info("lock sweep reclaimed expired locks",
			slog.Int64("count", count),
			slog.Duration("duration", time.Since(start)))
	}

	return nil
}

// PresenceSweepTask deletes presence records unseen past the stale window
type PresenceSweepTask struct {
	presence *presence.Service
	log      *slog.Logger
}

// NewPresenceSweepTask creates a new presence sweep task
func NewPresenceSweepTask(presenceSvc *presence.Service, log *slog.Logger) *PresenceSweepTask {
	return &PresenceSweepTask{
		presence: presenceSvc,
		log:      log.With(logger.Scope("scheduler.presence_sweep")),
	}
}

// Run executes the presence sweep
func (t *PresenceSweepTask) Run(ctx context.Context) error {
	start := time.Now()

	count, err := t.presence.SweepStale(ctx)
	if err != nil {
		t.log.Error("presence sweep failed", logger.Error(err))
		return err
	}

	if count > 0 {
		t.log.Info("presence sweep reclaimed stale records",
			slog.Int64("count", count),
			slog.Duration("duration", time.Since(start)))
	}

	return nil
}

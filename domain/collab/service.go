// Package collab sequences the cross-component cell-edit workflow: claim the
// cell lock, then advertise the edit through presence, undoing the lock when
// the presence write fails so no half-applied state survives.
package collab

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// CellEditResult is what a successful StartCellEdit returns
type CellEditResult struct {
	Lock     *locks.Lock        `json:"lock"`
	Presence *presence.Presence `json:"presence"`
}

// Service drives cell-edit sessions
type Service struct {
	locks    *locks.Service
	presence *presence.Service
	log      *slog.Logger
}

// NewService creates a new collab service
func NewService(lockSvc *locks.Service, presenceSvc *presence.Service, log *slog.Logger) *Service {
	return &Service{
		locks:    lockSvc,
		presence: presenceSvc,
		log:      log.With(logger.Scope("collab.svc")),
	}
}

// StartCellEdit acquires an edit lock on the cell and records the user as
// editing it. The diagonal is never editable. If the presence write fails
// the freshly acquired lock is released before the error propagates.
func (s *Service) StartCellEdit(ctx context.Context, projectID, userID uuid.UUID, sessionID string, pair locks.Pair, rowIndex, colIndex *int) (*CellEditResult, error) {
	if pair.SourceID == pair.TargetID {
		return nil, apperror.ErrValidation.WithMessage("self-reference cells cannot be edited")
	}

	lock, err := s.locks.Acquire(ctx, projectID, userID, sessionID, pair, locks.KindEdit)
	if err != nil {
		return nil, err
	}

	p, err := s.presence.Heartbeat(ctx, projectID, userID, sessionID, &presence.HeartbeatRequest{
		Activity:        presence.ActivityEditing,
		ViewingObjectID: &pair.SourceID,
		RowIndex:        rowIndex,
		ColIndex:        colIndex,
	})
	if err != nil {
		if _, releaseErr := s.locks.Release(ctx, lock.ID, userID); releaseErr != nil {
			s.log.Error("failed to release lock after presence failure",
				slog.String("lock_id", lock.ID.String()),
				logger.Error(releaseErr),
			)
		}
		return nil, err
	}

	return &CellEditResult{Lock: lock, Presence: p}, nil
}

// FinishCellEdit releases the caller's lock on the cell, if they hold one,
// and drops their presence back to viewing. Finishing a cell that is not
// locked by the caller reports released=false, mirroring lock release
// semantics.
func (s *Service) FinishCellEdit(ctx context.Context, projectID, userID uuid.UUID, sessionID string, pair locks.Pair) (bool, error) {
	released := false

	lock, err := s.locks.IsLocked(ctx, projectID, pair)
	if err != nil {
		return false, err
	}
	if lock != nil && lock.HolderID == userID {
		released, err = s.locks.Release(ctx, lock.ID, userID)
		if err != nil {
			return false, err
		}
	}

	if _, err := s.presence.Heartbeat(ctx, projectID, userID, sessionID, &presence.HeartbeatRequest{
		Activity: presence.ActivityViewing,
	}); err != nil {
		return released, err
	}

	return released, nil
}

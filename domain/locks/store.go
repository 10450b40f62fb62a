package locks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence contract for cell locks.
//
// Insert is the serialization point: it must atomically verify no unexpired
// lock exists for the pair and create the new row, reporting
// apperror.ErrCellLocked when one does. Two racing Insert calls for the same
// pair yield exactly one success. Expired rows for the pair are replaced, not
// treated as conflicts.
type Store interface {
	Insert(ctx context.Context, lock *Lock, now time.Time) error
	// DeleteByIDAndHolder removes the lock only when holder matches and
	// reports whether a row was removed.
	DeleteByIDAndHolder(ctx context.Context, id, holderID uuid.UUID) (bool, error)
	// FindActiveByPair returns the unexpired lock for the pair, or nil.
	FindActiveByPair(ctx context.Context, projectID uuid.UUID, pair Pair, now time.Time) (*Lock, error)
	// ListActive returns all unexpired locks in the project.
	ListActive(ctx context.Context, projectID uuid.UUID, now time.Time) ([]*Lock, error)
	// DeleteExpired removes rows with expires_at <= now and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

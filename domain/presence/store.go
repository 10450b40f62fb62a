package presence

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence contract for presence records. One row per
// (project, user); Upsert always advances last_seen_at.
type Store interface {
	Upsert(ctx context.Context, p *Presence) error
	// ListSeenSince returns records with last_seen_at after cutoff, in no
	// particular order.
	ListSeenSince(ctx context.Context, projectID uuid.UUID, cutoff time.Time) ([]*Presence, error)
	// DeleteByUser removes the user's record and reports whether one existed.
	DeleteByUser(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	// DeleteSeenBefore removes records with last_seen_at <= cutoff and
	// returns the count.
	DeleteSeenBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

package relationships

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence contract for relationships.
//
// Insert reports a duplicate (project, source, target) pair as
// apperror.ErrConflict; the Postgres implementation relies on the unique
// index for this, so racing creates resolve to one winner. Lookup methods
// return (nil, nil) when no row matches.
type Store interface {
	Insert(ctx context.Context, rel *Relationship) error
	Update(ctx context.Context, rel *Relationship) error
	// Delete removes the relationship and reports whether a row was removed.
	Delete(ctx context.Context, projectID, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, projectID, id uuid.UUID) (*Relationship, error)
	// ListByProject returns every relationship in the project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Relationship, error)
	// Search returns a page of matches plus the total count over the full
	// filter set.
	Search(ctx context.Context, projectID uuid.UUID, params SearchParams) ([]*Relationship, int, error)
}

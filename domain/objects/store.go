package objects

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence contract for objects. Two implementations exist:
// Repository (Postgres via bun) and MemoryStore (tests).
//
// Insert reports a duplicate name within the project as apperror.ErrConflict.
// Lookup methods return (nil, nil) when no row matches; callers decide whether
// absence is an error.
type Store interface {
	Insert(ctx context.Context, obj *Object) error
	Update(ctx context.Context, obj *Object) error
	// Delete removes the object and reports whether a row was removed.
	Delete(ctx context.Context, projectID, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, projectID, id uuid.UUID) (*Object, error)
	// List returns all objects in the project ordered by (name, id). The
	// matrix assembler depends on this order being stable across calls.
	List(ctx context.Context, projectID uuid.UUID) ([]*Object, error)
	Exists(ctx context.Context, projectID, id uuid.UUID) (bool, error)
}

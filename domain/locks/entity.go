package locks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Lock kinds
const (
	KindEdit = "edit"
	KindView = "view"
	KindBulk = "bulk"
)

// ValidKind reports whether kind is a known lock kind
func ValidKind(kind string) bool {
	switch kind {
	case KindEdit, KindView, KindBulk:
		return true
	}
	return false
}

// Pair is the ordered (source, target) object pair a lock guards. The same
// key addresses a relationship and a matrix cell.
type Pair struct {
	SourceID uuid.UUID `json:"sourceId"`
	TargetID uuid.UUID `json:"targetId"`
}

// Lock is an exclusive claim on a matrix cell in nom.cell_locks. At most one
// unexpired lock may exist per (project, pair); a row past ExpiresAt is
// semantically absent even before a sweep removes it.
type Lock struct {
	bun.BaseModel `bun:"table:nom.cell_locks,alias:l"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProjectID  uuid.UUID `bun:"project_id,type:uuid,notnull" json:"projectId"`
	SourceID   uuid.UUID `bun:"source_id,type:uuid,notnull" json:"sourceId"`
	TargetID   uuid.UUID `bun:"target_id,type:uuid,notnull" json:"targetId"`
	HolderID   uuid.UUID `bun:"holder_id,type:uuid,notnull" json:"holderId"`
	SessionID  string    `bun:"session_id,notnull,default:''" json:"sessionId"`
	Kind       string    `bun:"kind,notnull,default:'edit'" json:"kind"`
	AcquiredAt time.Time `bun:"acquired_at,notnull,default:now()" json:"acquiredAt"`
	ExpiresAt  time.Time `bun:"expires_at,notnull" json:"expiresAt"`
}

// Pair returns the cell this lock guards
func (l *Lock) Pair() Pair {
	return Pair{SourceID: l.SourceID, TargetID: l.TargetID}
}

// Expired reports whether the lock is past its expiry at the given instant
func (l *Lock) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// AcquireLockRequest is the request body for acquiring a cell lock
type AcquireLockRequest struct {
	SourceID uuid.UUID `json:"sourceId" validate:"required"`
	TargetID uuid.UUID `json:"targetId" validate:"required"`
	Kind     string    `json:"kind"`
}

// LockListResponse is the response for listing active locks
type LockListResponse struct {
	Data []*Lock `json:"data"`
}

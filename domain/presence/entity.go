package presence

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Presence activities
const (
	ActivityViewing    = "viewing"
	ActivityEditing    = "editing"
	ActivityNavigating = "navigating"
)

// ValidActivity reports whether activity is a known presence activity
func ValidActivity(activity string) bool {
	switch activity {
	case ActivityViewing, ActivityEditing, ActivityNavigating:
		return true
	}
	return false
}

// Presence is a user's liveness record in nom.presence, one row per
// (project, user). It is advisory awareness only and never blocks or is
// blocked by the lock manager.
type Presence struct {
	bun.BaseModel `bun:"table:nom.presence,alias:p"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProjectID       uuid.UUID  `bun:"project_id,type:uuid,notnull" json:"projectId"`
	UserID          uuid.UUID  `bun:"user_id,type:uuid,notnull" json:"userId"`
	SessionID       string     `bun:"session_id,notnull,default:''" json:"sessionId"`
	Activity        string     `bun:"activity,notnull,default:'viewing'" json:"activity"`
	ViewingObjectID *uuid.UUID `bun:"viewing_object_id,type:uuid" json:"viewingObjectId,omitempty"`
	RowIndex        *int       `bun:"row_index" json:"rowIndex,omitempty"`
	ColIndex        *int       `bun:"col_index" json:"colIndex,omitempty"`
	LastSeenAt      time.Time  `bun:"last_seen_at,notnull,default:now()" json:"lastSeenAt"`
}

// HeartbeatRequest is the request body for a presence heartbeat
type HeartbeatRequest struct {
	Activity        string     `json:"activity"`
	ViewingObjectID *uuid.UUID `json:"viewingObjectId,omitempty"`
	RowIndex        *int       `json:"rowIndex,omitempty"`
	ColIndex        *int       `json:"colIndex,omitempty"`
}

// PresenceListResponse is the response for listing active users
type PresenceListResponse struct {
	Data []*Presence `json:"data"`
}

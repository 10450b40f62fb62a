package matrix

import (
	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/relationships"
)

// Cell is one (source, target) entry in the assembled grid
type Cell struct {
	SourceID        uuid.UUID                    `json:"sourceId"`
	TargetID        uuid.UUID                    `json:"targetId"`
	Relationship    *relationships.Relationship  `json:"relationship,omitempty"`
	IsSelfReference bool                         `json:"isSelfReference"`
	CanEdit         bool                         `json:"canEdit"`
	IsLocked        bool                         `json:"isLocked"`
	LockedBy        *uuid.UUID                   `json:"lockedBy,omitempty"`
}

// ObjectSummary aggregates per-object relationship and synonym counts
type ObjectSummary struct {
	ObjectID     uuid.UUID `json:"objectId"`
	Name         string    `json:"name"`
	Outgoing     int       `json:"outgoing"`
	Incoming     int       `json:"incoming"`
	SynonymCount int       `json:"synonymCount"`
}

// Matrix is the fully assembled n×n grid for a project. Row and column
// indices follow Objects, which is ordered by (name, id) so indices are
// reproducible across calls.
type Matrix struct {
	Objects            []*objects.Object `json:"objects"`
	Cells              [][]Cell          `json:"cells"`
	Summaries          []ObjectSummary   `json:"summaries"`
	TotalObjects       int               `json:"totalObjects"`
	TotalRelationships int               `json:"totalRelationships"`
	CompletionPercent  float64           `json:"completionPercent"`
}

package relationships

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Cardinalities
const (
	CardinalityOneToOne   = "one_to_one"
	CardinalityOneToMany  = "one_to_many"
	CardinalityManyToMany = "many_to_many"
)

// Strengths
const (
	StrengthWeak   = "weak"
	StrengthNormal = "normal"
	StrengthStrong = "strong"
)

// ValidCardinality reports whether cardinality is a known value
func ValidCardinality(cardinality string) bool {
	switch cardinality {
	case CardinalityOneToOne, CardinalityOneToMany, CardinalityManyToMany:
		return true
	}
	return false
}

// ValidStrength reports whether strength is a known value
func ValidStrength(strength string) bool {
	switch strength {
	case StrengthWeak, StrengthNormal, StrengthStrong:
		return true
	}
	return false
}

// Relationship is a directed edge between two objects in nom.relationships.
// The ordered (project, source, target) pair is unique, one edge per matrix
// cell.
type Relationship struct {
	bun.BaseModel `bun:"table:nom.relationships,alias:r"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProjectID     uuid.UUID  `bun:"project_id,type:uuid,notnull" json:"projectId"`
	SourceID      uuid.UUID  `bun:"source_id,type:uuid,notnull" json:"sourceId"`
	TargetID      uuid.UUID  `bun:"target_id,type:uuid,notnull" json:"targetId"`
	Cardinality   string     `bun:"cardinality,notnull,default:'one_to_many'" json:"cardinality"`
	Label         *string    `bun:"label" json:"label,omitempty"`
	ReverseLabel  *string    `bun:"reverse_label" json:"reverseLabel,omitempty"`
	Bidirectional bool       `bun:"bidirectional,notnull,default:false" json:"bidirectional"`
	Strength      string     `bun:"strength,notnull,default:'normal'" json:"strength"`
	Description   string     `bun:"description,notnull,default:''" json:"description"`
	CreatedBy     *uuid.UUID `bun:"created_by,type:uuid" json:"createdBy,omitempty"`
	UpdatedBy     *uuid.UUID `bun:"updated_by,type:uuid" json:"updatedBy,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// CreateRelationshipRequest is the request body for creating a relationship
type CreateRelationshipRequest struct {
	SourceID      uuid.UUID `json:"sourceId" validate:"required"`
	TargetID      uuid.UUID `json:"targetId" validate:"required"`
	Cardinality   string    `json:"cardinality"`
	Label         *string   `json:"label,omitempty"`
	ReverseLabel  *string   `json:"reverseLabel,omitempty"`
	Bidirectional bool      `json:"bidirectional"`
	Strength      string    `json:"strength"`
	Description   string    `json:"description"`
}

// UpdateRelationshipRequest is the request body for a partial update.
// Only non-nil fields are applied; everything else keeps its prior value.
type UpdateRelationshipRequest struct {
	Cardinality   *string `json:"cardinality,omitempty"`
	Label         *string `json:"label,omitempty"`
	ReverseLabel  *string `json:"reverseLabel,omitempty"`
	Bidirectional *bool   `json:"bidirectional,omitempty"`
	Strength      *string `json:"strength,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// SearchParams filter and paginate a relationship search. Nil filter fields
// match everything.
type SearchParams struct {
	SourceID      *uuid.UUID
	TargetID      *uuid.UUID
	Cardinality   *string
	Strength      *string
	Bidirectional *bool
	Offset        int
	Limit         int
}

// SearchResult is a page of matching relationships. Total counts the full
// filter set independently of the page window.
type SearchResult struct {
	Data    []*Relationship `json:"data"`
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
	HasMore bool            `json:"hasMore"`
}

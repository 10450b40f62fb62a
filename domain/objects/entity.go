package objects

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Object is a named domain object in nom.objects. Objects form the rows and
// columns of the project's matrix; the name is unique per project.
type Object struct {
	bun.BaseModel `bun:"table:nom.objects,alias:o"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID  `bun:"project_id,type:uuid,notnull" json:"projectId"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description,notnull,default:''" json:"description"`
	Synonyms    []string   `bun:"synonyms,array" json:"synonyms"`
	CreatedBy   *uuid.UUID `bun:"created_by,type:uuid" json:"createdBy,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:now()" json:"updatedAt"`
}

// CreateObjectRequest is the request body for creating an object
type CreateObjectRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Synonyms    []string `json:"synonyms"`
}

// UpdateObjectRequest is the request body for updating an object.
// Only non-nil fields are applied.
type UpdateObjectRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Synonyms    *[]string `json:"synonyms,omitempty"`
}

// ObjectListResponse is the response for listing objects
type ObjectListResponse struct {
	Data []*Object `json:"data"`
}

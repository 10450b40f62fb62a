package objects

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

// Service handles business logic for objects
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new objects service
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With(logger.Scope("objects.svc")),
		now:   time.Now,
	}
}

// Create creates a new object in the project
func (s *Service) Create(ctx context.Context, projectID, userID uuid.UUID, req *CreateObjectRequest) (*Object, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.ErrValidation.WithMessage("name is required")
	}

	now := s.now().UTC()
	obj := &Object{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        name,
		Description: req.Description,
		Synonyms:    req.Synonyms,
		CreatedBy:   &userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if obj.Synonyms == nil {
		obj.Synonyms = []string{}
	}

	if err := s.store.Insert(ctx, obj); err != nil {
		return nil, err
	}

	return obj, nil
}

// Get retrieves an object by id within the project
func (s *Service) Get(ctx context.Context, projectID, id uuid.UUID) (*Object, error) {
	obj, err := s.store.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, apperror.NewNotFound("object", id.String())
	}
	return obj, nil
}

// List returns all objects in the project ordered by (name, id)
func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]*Object, error) {
	return s.store.List(ctx, projectID)
}

// Update applies the non-nil fields of req to an existing object
func (s *Service) Update(ctx context.Context, projectID, id uuid.UUID, req *UpdateObjectRequest) (*Object, error) {
	obj, err := s.store.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, apperror.NewNotFound("object", id.String())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.ErrValidation.WithMessage("name cannot be empty")
		}
		obj.Name = name
	}
	if req.Description != nil {
		obj.Description = *req.Description
	}
	if req.Synonyms != nil {
		obj.Synonyms = *req.Synonyms
	}
	obj.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, obj); err != nil {
		return nil, err
	}

	return obj, nil
}

// Delete removes an object from the project
func (s *Service) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, projectID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("object", id.String())
	}
	return nil
}

// Exists reports whether the object belongs to the project. Used by the
// relationship service to validate endpoints before creating an edge.
func (s *Service) Exists(ctx context.Context, projectID, id uuid.UUID) (bool, error) {
	return s.store.Exists(ctx, projectID, id)
}

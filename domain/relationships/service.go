package relationships

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/mathutil"
	"github.com/nomgrid/nomgrid/pkg/tracing"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// Service is the relationship store plus the collaboration facade exposed to
// transport: create/update/delete/search with the outcome taxonomy
// (Conflict, NotFound, Validation) surfaced as explicit errors.
type Service struct {
	store   Store
	objects *objects.Service
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new relationships service
func NewService(store Store, objectSvc *objects.Service, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		objects: objectSvc,
		log:     log.With(logger.Scope("relationships.svc")),
		now:     time.Now,
	}
}

// Create validates both endpoints and claims the ordered pair. A missing
// endpoint is a validation failure, an occupied pair a conflict. Self-loops
// are rejected here; the matrix diagonal is never edited through this path.
func (s *Service) Create(ctx context.Context, projectID, userID uuid.UUID, req *CreateRelationshipRequest) (*Relationship, error) {
	ctx, span := tracing.Start(ctx, "relationships.create",
		attribute.String("nom.project.id", projectID.String()),
	)
	defer span.End()

	if req.SourceID == uuid.Nil || req.TargetID == uuid.Nil {
		return nil, apperror.ErrValidation.WithMessage("sourceId and targetId are required")
	}
	if req.SourceID == req.TargetID {
		return nil, apperror.ErrValidation.WithMessage("a relationship cannot connect an object to itself")
	}

	cardinality := req.Cardinality
	if cardinality == "" {
		cardinality = CardinalityOneToMany
	}
	if !ValidCardinality(cardinality) {
		return nil, apperror.ErrValidation.WithMessage("cardinality must be one of: one_to_one, one_to_many, many_to_many")
	}

	strength := req.Strength
	if strength == "" {
		strength = StrengthNormal
	}
	if !ValidStrength(strength) {
		return nil, apperror.ErrValidation.WithMessage("strength must be one of: weak, normal, strong")
	}

	exists, err := s.objects.Exists(ctx, projectID, req.SourceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrValidation.
			WithMessage("source object does not exist in the project").
			WithDetails(map[string]any{"sourceId": req.SourceID.String()})
	}

	exists, err = s.objects.Exists(ctx, projectID, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrValidation.
			WithMessage("target object does not exist in the project").
			WithDetails(map[string]any{"targetId": req.TargetID.String()})
	}

	now := s.now().UTC()
	rel := &Relationship{
		ID:            uuid.New(),
		ProjectID:     projectID,
		SourceID:      req.SourceID,
		TargetID:      req.TargetID,
		Cardinality:   cardinality,
		Label:         req.Label,
		ReverseLabel:  req.ReverseLabel,
		Bidirectional: req.Bidirectional,
		Strength:      strength,
		Description:   req.Description,
		CreatedBy:     &userID,
		UpdatedBy:     &userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Insert(ctx, rel); err != nil {
		return nil, err
	}

	s.log.Debug("relationship created",
		slog.String("relationship_id", rel.ID.String()),
		slog.String("source_id", rel.SourceID.String()),
		slog.String("target_id", rel.TargetID.String()),
	)

	return rel, nil
}

// Get retrieves a relationship by (id, project)
func (s *Service) Get(ctx context.Context, projectID, id uuid.UUID) (*Relationship, error) {
	rel, err := s.store.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, apperror.NewNotFound("relationship", id.String())
	}
	return rel, nil
}

// Update applies the non-nil fields of req to an existing relationship.
// Endpoints are immutable; moving an edge is delete-then-create.
func (s *Service) Update(ctx context.Context, projectID, userID, id uuid.UUID, req *UpdateRelationshipRequest) (*Relationship, error) {
	rel, err := s.store.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, apperror.NewNotFound("relationship", id.String())
	}

	if req.Cardinality != nil {
		if !ValidCardinality(*req.Cardinality) {
			return nil, apperror.ErrValidation.WithMessage("cardinality must be one of: one_to_one, one_to_many, many_to_many")
		}
		rel.Cardinality = *req.Cardinality
	}
	if req.Strength != nil {
		if !ValidStrength(*req.Strength) {
			return nil, apperror.ErrValidation.WithMessage("strength must be one of: weak, normal, strong")
		}
		rel.Strength = *req.Strength
	}
	if req.Label != nil {
		rel.Label = req.Label
	}
	if req.ReverseLabel != nil {
		rel.ReverseLabel = req.ReverseLabel
	}
	if req.Bidirectional != nil {
		rel.Bidirectional = *req.Bidirectional
	}
	if req.Description != nil {
		rel.Description = *req.Description
	}
	rel.UpdatedBy = &userID
	rel.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, rel); err != nil {
		return nil, err
	}

	return rel, nil
}

// Delete removes a relationship, immediately freeing its matrix cell
func (s *Service) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, projectID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("relationship", id.String())
	}
	return nil
}

// ListByProject returns every relationship in the project. Used by the
// matrix assembler, which indexes the result by pair.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Relationship, error) {
	return s.store.ListByProject(ctx, projectID)
}

// Search filters and paginates relationships. The total is computed over the
// full filter set so hasMore stays consistent with the unpaginated results.
func (s *Service) Search(ctx context.Context, projectID uuid.UUID, params SearchParams) (*SearchResult, error) {
	if params.Cardinality != nil && !ValidCardinality(*params.Cardinality) {
		return nil, apperror.ErrValidation.WithMessage("cardinality must be one of: one_to_one, one_to_many, many_to_many")
	}
	if params.Strength != nil && !ValidStrength(*params.Strength) {
		return nil, apperror.ErrValidation.WithMessage("strength must be one of: weak, normal, strong")
	}

	if params.Offset < 0 {
		params.Offset = 0
	}
	params.Limit = mathutil.ClampLimit(params.Limit, defaultSearchLimit, maxSearchLimit)

	rels, total, err := s.store.Search(ctx, projectID, params)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Data:    rels,
		Total:   total,
		Offset:  params.Offset,
		Limit:   params.Limit,
		HasMore: params.Offset+params.Limit < total,
	}, nil
}

package matrix

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/relationships"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/mathutil"
	"github.com/nomgrid/nomgrid/pkg/metrics"
	"github.com/nomgrid/nomgrid/pkg/tracing"
)

type pairKey struct {
	sourceID uuid.UUID
	targetID uuid.UUID
}

// Service assembles the project matrix from objects, relationships and live
// lock state.
type Service struct {
	objects       *objects.Service
	relationships *relationships.Service
	locks         *locks.Service
	log           *slog.Logger
}

// NewService creates a new matrix service
func NewService(objectSvc *objects.Service, relationshipSvc *relationships.Service, lockSvc *locks.Service, log *slog.Logger) *Service {
	return &Service{
		objects:       objectSvc,
		relationships: relationshipSvc,
		locks:         lockSvc,
		log:           log.With(logger.Scope("matrix.svc")),
	}
}

// Assemble builds the n×n grid. Objects, relationships and locks are each
// fetched once and the latter two indexed by pair, so the n² cell loop does
// O(1) lookups instead of scanning per cell.
func (s *Service) Assemble(ctx context.Context, projectID uuid.UUID) (*Matrix, error) {
	ctx, span := tracing.Start(ctx, "matrix.assemble",
		attribute.String("nom.project.id", projectID.String()),
	)
	defer span.End()

	start := time.Now()

	objs, err := s.objects.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rels, err := s.relationships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	activeLocks, err := s.locks.ListActive(ctx, projectID)
	if err != nil {
		return nil, err
	}

	relByPair := make(map[pairKey]*relationships.Relationship, len(rels))
	outgoing := make(map[uuid.UUID]int, len(objs))
	incoming := make(map[uuid.UUID]int, len(objs))
	for _, rel := range rels {
		relByPair[pairKey{sourceID: rel.SourceID, targetID: rel.TargetID}] = rel
		outgoing[rel.SourceID]++
		incoming[rel.TargetID]++
	}

	lockByPair := make(map[pairKey]*locks.Lock, len(activeLocks))
	for _, lock := range activeLocks {
		lockByPair[pairKey{sourceID: lock.SourceID, targetID: lock.TargetID}] = lock
	}

	n := len(objs)
	cells := make([][]Cell, n)
	for i, src := range objs {
		row := make([]Cell, n)
		for j, dst := range objs {
			key := pairKey{sourceID: src.ID, targetID: dst.ID}
			cell := Cell{
				SourceID:        src.ID,
				TargetID:        dst.ID,
				Relationship:    relByPair[key],
				IsSelfReference: i == j,
				CanEdit:         i != j,
			}
			if lock, ok := lockByPair[key]; ok {
				cell.IsLocked = true
				holder := lock.HolderID
				cell.LockedBy = &holder
			}
			row[j] = cell
		}
		cells[i] = row
	}

	summaries := make([]ObjectSummary, n)
	for i, obj := range objs {
		summaries[i] = ObjectSummary{
			ObjectID:     obj.ID,
			Name:         obj.Name,
			Outgoing:     outgoing[obj.ID],
			Incoming:     incoming[obj.ID],
			SynonymCount: len(obj.Synonyms),
		}
	}

	m := &Matrix{
		Objects:            objs,
		Cells:              cells,
		Summaries:          summaries,
		TotalObjects:       n,
		TotalRelationships: len(rels),
		CompletionPercent:  completionPercent(n, len(rels)),
	}

	metrics.MatrixAssemblies.Inc()
	metrics.MatrixAssemblyDuration.Observe(time.Since(start).Seconds())
	metrics.MatrixCellCount.Set(float64(n * n))

	return m, nil
}

// completionPercent is relationships over the n·(n-1) possible off-diagonal
// cells, as a percentage clamped to [0,100]. Zero when n <= 1, there are no
// editable cells to fill.
func completionPercent(n, relCount int) float64 {
	if n <= 1 {
		return 0
	}
	possible := float64(n * (n - 1))
	return mathutil.ClampFloat(float64(relCount)/possible*100, 0, 100)
}

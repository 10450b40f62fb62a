package relationships

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/pkg/apperror"
)

// MemoryStore is an in-memory Store used by tests
type MemoryStore struct {
	mu   sync.Mutex
	rels map[uuid.UUID]*Relationship
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rels: make(map[uuid.UUID]*Relationship)}
}

func (s *MemoryStore) Insert(_ context.Context, rel *Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.rels {
		if existing.ProjectID == rel.ProjectID &&
			existing.SourceID == rel.SourceID &&
			existing.TargetID == rel.TargetID {
			return apperror.ErrConflict.WithMessage("A relationship already exists for this object pair")
		}
	}

	clone := *rel
	s.rels[rel.ID] = &clone
	return nil
}

func (s *MemoryStore) Update(_ context.Context, rel *Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rels[rel.ID]
	if !ok || existing.ProjectID != rel.ProjectID {
		return nil
	}

	clone := *rel
	s.rels[rel.ID] = &clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, projectID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rels[id]
	if !ok || existing.ProjectID != projectID {
		return false, nil
	}

	delete(s.rels, id)
	return true, nil
}

func (s *MemoryStore) GetByID(_ context.Context, projectID, id uuid.UUID) (*Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rels[id]
	if !ok || existing.ProjectID != projectID {
		return nil, nil
	}

	clone := *existing
	return &clone, nil
}

func (s *MemoryStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rels := []*Relationship{}
	for _, rel := range s.rels {
		if rel.ProjectID == projectID {
			clone := *rel
			rels = append(rels, &clone)
		}
	}

	return rels, nil
}

func (s *MemoryStore) Search(_ context.Context, projectID uuid.UUID, params SearchParams) ([]*Relationship, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []*Relationship{}
	for _, rel := range s.rels {
		if rel.ProjectID != projectID {
			continue
		}
		if params.SourceID != nil && rel.SourceID != *params.SourceID {
			continue
		}
		if params.TargetID != nil && rel.TargetID != *params.TargetID {
			continue
		}
		if params.Cardinality != nil && rel.Cardinality != *params.Cardinality {
			continue
		}
		if params.Strength != nil && rel.Strength != *params.Strength {
			continue
		}
		if params.Bidirectional != nil && rel.Bidirectional != *params.Bidirectional {
			continue
		}
		clone := *rel
		matches = append(matches, &clone)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})

	total := len(matches)
	if params.Offset >= total {
		return []*Relationship{}, total, nil
	}

	end := params.Offset + params.Limit
	if params.Limit <= 0 || end > total {
		end = total
	}

	return matches[params.Offset:end], total, nil
}

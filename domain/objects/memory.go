package objects

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/pkg/apperror"
)

// MemoryStore is an in-memory Store used by tests. The mutex is the
// serialization point the database's unique constraint provides in production.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[uuid.UUID]*Object
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[uuid.UUID]*Object)}
}

func (s *MemoryStore) Insert(_ context.Context, obj *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.objects {
		if existing.ProjectID == obj.ProjectID && existing.Name == obj.Name {
			return apperror.ErrConflict.WithMessage("An object with this name already exists in the project")
		}
	}

	clone := *obj
	s.objects[obj.ID] = &clone
	return nil
}

func (s *MemoryStore) Update(_ context.Context, obj *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.objects[obj.ID]
	if !ok || existing.ProjectID != obj.ProjectID {
		return nil
	}

	for _, other := range s.objects {
		if other.ID != obj.ID && other.ProjectID == obj.ProjectID && other.Name == obj.Name {
			return apperror.ErrConflict.WithMessage("An object with this name already exists in the project")
		}
	}

	clone := *obj
	s.objects[obj.ID] = &clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, projectID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.objects[id]
	if !ok || existing.ProjectID != projectID {
		return false, nil
	}

	delete(s.objects, id)
	return true, nil
}

func (s *MemoryStore) GetByID(_ context.Context, projectID, id uuid.UUID) (*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.objects[id]
	if !ok || existing.ProjectID != projectID {
		return nil, nil
	}

	clone := *existing
	return &clone, nil
}

func (s *MemoryStore) List(_ context.Context, projectID uuid.UUID) ([]*Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objs := []*Object{}
	for _, obj := range s.objects {
		if obj.ProjectID == projectID {
			clone := *obj
			objs = append(objs, &clone)
		}
	}

	sort.Slice(objs, func(i, j int) bool {
		if objs[i].Name != objs[j].Name {
			return objs[i].Name < objs[j].Name
		}
		return objs[i].ID.String() < objs[j].ID.String()
	})

	return objs, nil
}

func (s *MemoryStore) Exists(_ context.Context, projectID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.objects[id]
	return ok && existing.ProjectID == projectID, nil
}

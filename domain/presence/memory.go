package presence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type userKey struct {
	projectID uuid.UUID
	userID    uuid.UUID
}

// MemoryStore is an in-memory Store used by tests
type MemoryStore struct {
	mu      sync.Mutex
	records map[userKey]*Presence
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[userKey]*Presence)}
}

func (s *MemoryStore) Upsert(_ context.Context, p *Presence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey{projectID: p.ProjectID, userID: p.UserID}
	if existing, ok := s.records[key]; ok {
		p.ID = existing.ID
	}

	clone := *p
	s.records[key] = &clone
	return nil
}

func (s *MemoryStore) ListSeenSince(_ context.Context, projectID uuid.UUID, cutoff time.Time) ([]*Presence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := []*Presence{}
	for _, p := range s.records {
		if p.ProjectID == projectID && p.LastSeenAt.After(cutoff) {
			clone := *p
			active = append(active, &clone)
		}
	}

	return active, nil
}

func (s *MemoryStore) DeleteByUser(_ context.Context, projectID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey{projectID: projectID, userID: userID}
	if _, ok := s.records[key]; !ok {
		return false, nil
	}

	delete(s.records, key)
	return true, nil
}

func (s *MemoryStore) DeleteSeenBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for key, p := range s.records {
		if !p.LastSeenAt.After(cutoff) {
			delete(s.records, key)
			count++
		}
	}

	return count, nil
}

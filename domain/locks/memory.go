package locks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/pkg/apperror"
)

// MemoryStore is an in-memory Store used by tests. The mutex makes the
// check-then-insert in Insert indivisible, mirroring what the unique index
// gives the Postgres implementation.
type MemoryStore struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*Lock
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{locks: make(map[uuid.UUID]*Lock)}
}

func (s *MemoryStore) Insert(_ context.Context, lock *Lock, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.locks {
		if existing.ProjectID != lock.ProjectID ||
			existing.SourceID != lock.SourceID ||
			existing.TargetID != lock.TargetID {
			continue
		}
		if existing.Expired(now) {
			delete(s.locks, id)
			continue
		}
		return apperror.ErrCellLocked
	}

	clone := *lock
	s.locks[lock.ID] = &clone
	return nil
}

func (s *MemoryStore) DeleteByIDAndHolder(_ context.Context, id, holderID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.locks[id]
	if !ok || existing.HolderID != holderID {
		return false, nil
	}

	delete(s.locks, id)
	return true, nil
}

func (s *MemoryStore) FindActiveByPair(_ context.Context, projectID uuid.UUID, pair Pair, now time.Time) (*Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lock := range s.locks {
		if lock.ProjectID == projectID &&
			lock.SourceID == pair.SourceID &&
			lock.TargetID == pair.TargetID &&
			!lock.Expired(now) {
			clone := *lock
			return &clone, nil
		}
	}

	return nil, nil
}

func (s *MemoryStore) ListActive(_ context.Context, projectID uuid.UUID, now time.Time) ([]*Lock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := []*Lock{}
	for _, lock := range s.locks {
		if lock.ProjectID == projectID && !lock.Expired(now) {
			clone := *lock
			active = append(active, &clone)
		}
	}

	return active, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for id, lock := range s.locks {
		if lock.Expired(now) {
			delete(s.locks, id)
			count++
		}
	}

	return count, nil
}

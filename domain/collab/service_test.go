package collab

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/apperror"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Collab.LockGrantDuration = 5 * time.Minute
	cfg.Collab.PresenceActiveWindow = 5 * time.Minute
	cfg.Collab.PresenceStaleWindow = time.Hour
	return cfg
}

func newTestService(presenceStore presence.Store) (*Service, *locks.Service, *presence.Service) {
	cfg := testConfig()
	log := slog.Default()

	lockSvc := locks.NewService(locks.NewMemoryStore(), cfg, log)
	presenceSvc := presence.NewService(presenceStore, cfg, log)

	return NewService(lockSvc, presenceSvc, log), lockSvc, presenceSvc
}

func TestStartCellEdit(t *testing.T) {
	svc, lockSvc, presenceSvc := newTestService(presence.NewMemoryStore())
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()
	pair := locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()}

	row, col := 1, 3
	result, err := svc.StartCellEdit(ctx, projectID, userID, "sess-1", pair, &row, &col)
	require.NoError(t, err)
	assert.Equal(t, userID, result.Lock.HolderID)
	assert.Equal(t, locks.KindEdit, result.Lock.Kind)
	assert.Equal(t, presence.ActivityEditing, result.Presence.Activity)
	assert.Equal(t, &row, result.Presence.RowIndex)

	held, err := lockSvc.IsLocked(ctx, projectID, pair)
	require.NoError(t, err)
	require.NotNil(t, held)

	active, err := presenceSvc.ListActive(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, presence.ActivityEditing, active[0].Activity)
}

func TestStartCellEditDiagonalRejected(t *testing.T) {
	svc, _, _ := newTestService(presence.NewMemoryStore())
	id := uuid.New()

	_, err := svc.StartCellEdit(context.Background(), uuid.New(), uuid.New(), "sess-1", locks.Pair{SourceID: id, TargetID: id}, nil, nil)
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "validation_error", appErr.Code)
}

func TestStartCellEditLockedCellConflicts(t *testing.T) {
	svc, _, _ := newTestService(presence.NewMemoryStore())
	ctx := context.Background()
	projectID := uuid.New()
	pair := locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()}

	_, err := svc.StartCellEdit(ctx, projectID, uuid.New(), "sess-1", pair, nil, nil)
	require.NoError(t, err)

	_, err = svc.StartCellEdit(ctx, projectID, uuid.New(), "sess-2", pair, nil, nil)
	assert.True(t, apperror.IsConflict(err))
}

// failingPresenceStore rejects every upsert
type failingPresenceStore struct {
	*presence.MemoryStore
}

func (s *failingPresenceStore) Upsert(context.Context, *presence.Presence) error {
	return apperror.ErrDatabase
}

func TestStartCellEditReleasesLockOnPresenceFailure(t *testing.T) {
	svc, lockSvc, _ := newTestService(&failingPresenceStore{presence.NewMemoryStore()})
	ctx := context.Background()
	projectID := uuid.New()
	pair := locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()}

	_, err := svc.StartCellEdit(ctx, projectID, uuid.New(), "sess-1", pair, nil, nil)
	require.Error(t, err)

	// No orphaned lock: the cell is free for the next editor
	held, err := lockSvc.IsLocked(ctx, projectID, pair)
	require.NoError(t, err)
	assert.Nil(t, held)
}

func TestFinishCellEdit(t *testing.T) {
	svc, lockSvc, presenceSvc := newTestService(presence.NewMemoryStore())
	ctx := context.Background()
	projectID := uuid.New()
	userID := uuid.New()
	pair := locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()}

	_, err := svc.StartCellEdit(ctx, projectID, userID, "sess-1", pair, nil, nil)
	require.NoError(t, err)

	released, err := svc.FinishCellEdit(ctx, projectID, userID, "sess-1", pair)
	require.NoError(t, err)
	assert.True(t, released)

	held, err := lockSvc.IsLocked(ctx, projectID, pair)
	require.NoError(t, err)
	assert.Nil(t, held)

	active, err := presenceSvc.ListActive(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, presence.ActivityViewing, active[0].Activity)
}

func TestFinishCellEditByNonHolder(t *testing.T) {
	svc, lockSvc, _ := newTestService(presence.NewMemoryStore())
	ctx := context.Background()
	projectID := uuid.New()
	holder := uuid.New()
	pair := locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()}

	_, err := svc.StartCellEdit(ctx, projectID, holder, "sess-1", pair, nil, nil)
	require.NoError(t, err)

	// Someone else finishing the cell does not steal the holder's lock
	released, err := svc.FinishCellEdit(ctx, projectID, uuid.New(), "sess-2", pair)
	require.NoError(t, err)
	assert.False(t, released)

	held, err := lockSvc.IsLocked(ctx, projectID, pair)
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.Equal(t, holder, held.HolderID)
}

func TestFinishCellEditUnlockedCell(t *testing.T) {
	svc, _, _ := newTestService(presence.NewMemoryStore())

	released, err := svc.FinishCellEdit(context.Background(), uuid.New(), uuid.New(), "sess-1", locks.Pair{SourceID: uuid.New(), TargetID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, released)
}

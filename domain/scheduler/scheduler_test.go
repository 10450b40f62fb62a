package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/internal/config"
)

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(slog.Default())
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Start is idempotent
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
}

func TestAddIntervalTask(t *testing.T) {
	s := NewScheduler(slog.Default())

	noop := func(context.Context) error { return nil }
	require.NoError(t, s.AddIntervalTask("lock_sweep", time.Minute, noop))
	require.NoError(t, s.AddIntervalTask("presence_sweep", 10*time.Minute, noop))

	assert.ElementsMatch(t, []string{"lock_sweep", "presence_sweep"}, s.ListTasks())

	// Re-registering a name replaces it rather than duplicating
	require.NoError(t, s.AddIntervalTask("lock_sweep", 2*time.Minute, noop))
	assert.Len(t, s.ListTasks(), 2)
}

func TestSweepTasksRun(t *testing.T) {
	cfg := &config.Config{}
	cfg.Collab.LockGrantDuration = 5 * time.Minute
	cfg.Collab.PresenceStaleWindow = time.Hour

	log := slog.Default()
	lockSvc := locks.NewService(locks.NewMemoryStore(), cfg, log)
	presenceSvc := presence.NewService(presence.NewMemoryStore(), cfg, log)

	// Empty stores: zero reclaimed is success, not an error
	require.NoError(t, NewLockSweepTask(lockSvc, log).Run(context.Background()))
	require.NoError(t, NewPresenceSweepTask(presenceSvc, log).Run(context.Background()))
}

package scheduler

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/internal/config"
)

// Module provides scheduled sweep tasks
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(
		RegisterTasks,
		RegisterSchedulerLifecycle,
	),
)

// TaskParams contains dependencies for registering scheduled tasks
type TaskParams struct {
	fx.In
	Scheduler *Scheduler
	Locks     *locks.Service
	Presence  *presence.Service
	Log       *slog.Logger
	Cfg       *config.Config
}

// RegisterTasks registers the lock and presence sweeps
func RegisterTasks(p TaskParams) error {
	if !p.Cfg.Collab.SchedulerEnabled {
		p.Log.Info("scheduler disabled, skipping task registration")
		return nil
	}

	lockSweep := NewLockSweepTask(p.Locks, p.Log)
	if err := p.Scheduler.AddIntervalTask("lock_sweep",
		p.Cfg.Collab.LockSweepInterval, lockSweep.Run); err != nil {
		p.Log.Error("failed to register lock sweep task",
			slog.String("error", err.Error()))
	}

	presenceSweep := NewPresenceSweepTask(p.Presence, p.Log)
	if err := p.Scheduler.AddIntervalTask("presence_sweep",
		p.Cfg.Collab.PresenceSweepInterval, presenceSweep.Run); err != nil {
		p.Log.Error("failed to register presence sweep task",
			slog.String("error", err.Error()))
	}

	p.Log.Info("registered scheduled tasks",
		slog.Any("tasks", p.Scheduler.ListTasks()))

	return nil
}

// RegisterSchedulerLifecycle registers the scheduler with fx lifecycle
func RegisterSchedulerLifecycle(lc fx.Lifecycle, scheduler *Scheduler, cfg *config.Config) {
	if !cfg.Collab.SchedulerEnabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
}

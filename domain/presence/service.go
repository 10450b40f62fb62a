package presence

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/logger"
	"github.com/nomgrid/nomgrid/pkg/metrics"
)

// Service is the presence tracker
type Service struct {
	store        Store
	activeWindow time.Duration
	staleWindow  time.Duration
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new presence service
func NewService(store Store, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		store:        store,
		activeWindow: cfg.Collab.PresenceActiveWindow,
		staleWindow:  cfg.Collab.PresenceStaleWindow,
		log:          log.With(logger.Scope("presence.svc")),
		now:          time.Now,
	}
}

// Heartbeat creates or overwrites the (project, user) record, always
// advancing last_seen_at to the call time regardless of prior state.
func (s *Service) Heartbeat(ctx context.Context, projectID, userID uuid.UUID, sessionID string, req *HeartbeatRequest) (*Presence, error) {
	activity := req.Activity
	if activity == "" {
		activity = ActivityViewing
	}
	if !ValidActivity(activity) {
		return nil, apperror.ErrValidation.WithMessage("activity must be one of: viewing, editing, navigating")
	}

	p := &Presence{
		ID:              uuid.New(),
		ProjectID:       projectID,
		UserID:          userID,
		SessionID:       sessionID,
		Activity:        activity,
		ViewingObjectID: req.ViewingObjectID,
		RowIndex:        req.RowIndex,
		ColIndex:        req.ColIndex,
		LastSeenAt:      s.now().UTC(),
	}

	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, err
	}

	metrics.PresenceHeartbeats.Inc()
	return p, nil
}

// ListActive returns users seen within the active window. Order is
// unspecified, callers must not depend on it.
func (s *Service) ListActive(ctx context.Context, projectID uuid.UUID) ([]*Presence, error) {
	cutoff := s.now().UTC().Add(-s.activeWindow)
	return s.store.ListSeenSince(ctx, projectID, cutoff)
}

// Leave removes the user's presence record
func (s *Service) Leave(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	return s.store.DeleteByUser(ctx, projectID, userID)
}

// SweepStale reclaims records unseen for longer than the stale window. Zero
// reclaimed is success.
func (s *Service) SweepStale(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.staleWindow)
	count, err := s.store.DeleteSeenBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	metrics.PresenceSwept.Add(float64(count))
	if count > 0 {
		s.log.Info("swept stale presence records", slog.Int64("count", count))
	} else {
		s.log.Debug("no stale presence records to sweep")
	}

	return count, nil
}

// Package testutil provides an in-process HTTP harness for API-level tests.
// The full route surface is mounted on memory stores, so tests exercise
// handlers, middleware, and error mapping without a database.
package testutil

import (
	"io"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nomgrid/nomgrid/domain/collab"
	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/matrix"
	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/domain/relationships"
	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
)

// TestServer hosts the complete API surface backed by memory stores.
type TestServer struct {
	Echo   *echo.Echo
	Client *HTTPClient
	Config *config.Config

	Objects       *objects.Service
	Relationships *relationships.Service
	Locks         *locks.Service
	Presence      *presence.Service
	Matrix        *matrix.Service
	Collab        *collab.Service
}

// NewTestServer builds an Echo instance with every domain route registered.
func NewTestServer() *TestServer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Environment: "test",
		Collab: config.CollabConfig{
			LockGrantDuration:     5 * time.Minute,
			LockSweepInterval:     time.Minute,
			PresenceActiveWindow:  5 * time.Minute,
			PresenceStaleWindow:   time.Hour,
			PresenceSweepInterval: 10 * time.Minute,
		},
	}

	objectSvc := objects.NewService(objects.NewMemoryStore(), log)
	relationshipSvc := relationships.NewService(relationships.NewMemoryStore(), objectSvc, log)
	lockSvc := locks.NewService(locks.NewMemoryStore(), cfg, log)
	presenceSvc := presence.NewService(presence.NewMemoryStore(), cfg, log)
	matrixSvc := matrix.NewService(objectSvc, relationshipSvc, lockSvc, log)
	collabSvc := collab.NewService(lockSvc, presenceSvc, log)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(log)

	auth := identity.NewMiddleware(log)
	objects.RegisterRoutes(e, objects.NewHandler(objectSvc), auth)
	relationships.RegisterRoutes(e, relationships.NewHandler(relationshipSvc), auth)
	locks.RegisterRoutes(e, locks.NewHandler(lockSvc), auth)
	presence.RegisterRoutes(e, presence.NewHandler(presenceSvc), auth)
	matrix.RegisterRoutes(e, matrix.NewHandler(matrixSvc), auth)
	collab.RegisterRoutes(e, collab.NewHandler(collabSvc), auth)

	return &TestServer{
		Echo:          e,
		Client:        NewHTTPClient(e),
		Config:        cfg,
		Objects:       objectSvc,
		Relationships: relationshipSvc,
		Locks:         lockSvc,
		Presence:      presenceSvc,
		Matrix:        matrixSvc,
		Collab:        collabSvc,
	}
}

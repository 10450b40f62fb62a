// Package main provides the entry point for the NOM Grid API server
//
// @title NOM Grid API
// @version 0.4.0
// @description Collaborative relationship matrix service for nested object models
// @host localhost:3010
// @BasePath /
// @schemes http https
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/nomgrid/nomgrid/domain/collab"
	"github.com/nomgrid/nomgrid/domain/health"
	"github.com/nomgrid/nomgrid/domain/locks"
	"github.com/nomgrid/nomgrid/domain/matrix"
	"github.com/nomgrid/nomgrid/domain/objects"
	"github.com/nomgrid/nomgrid/domain/presence"
	"github.com/nomgrid/nomgrid/domain/relationships"
	"github.com/nomgrid/nomgrid/domain/scheduler"
	"github.com/nomgrid/nomgrid/domain/tracing"
	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/internal/database"
	"github.com/nomgrid/nomgrid/internal/migrate"
	"github.com/nomgrid/nomgrid/internal/server"
	"github.com/nomgrid/nomgrid/pkg/identity"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

func main() {
	// Load .env files if present (for local development)
	// Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		// Logging
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		migrate.Module,
		server.Module,
		tracing.Module,

		// Request identity (X-User-ID / X-Project-ID headers)
		identity.Module,

		// Domain modules
		health.Module,
		objects.Module,
		relationships.Module,
		locks.Module,
		presence.Module,
		matrix.Module,
		collab.Module,

		// Scheduler module (lock and presence sweep jobs)
		scheduler.Module,
	).Run()
}

package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"3010"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings
	Database DatabaseConfig

	// Collaboration tunables (lock/presence windows)
	Collab CollabConfig

	// OpenTelemetry tracing
	Otel OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"nomgrid"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"nomgrid"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// CollabConfig holds the collaboration subsystem tunables.
//
// Expiry windows are properties of lock/presence records, not of individual
// requests: a lock lives LockGrantDuration from acquisition and is never
// renewed implicitly; a presence record counts as active within
// PresenceActiveWindow of its last heartbeat and becomes reclaimable after
// PresenceStaleWindow.
type CollabConfig struct {
	// LockGrantDuration is the fixed lifetime assigned to a cell lock at
	// acquisition time.
	LockGrantDuration time.Duration `env:"LOCK_GRANT_DURATION" envDefault:"5m"`

	// LockSweepInterval is how often expired locks are physically reclaimed.
	// Reads treat expired locks as absent regardless of sweep timing.
	LockSweepInterval time.Duration `env:"LOCK_SWEEP_INTERVAL" envDefault:"1m"`

	// PresenceActiveWindow bounds how long after the last heartbeat a user
	// still counts as present.
	PresenceActiveWindow time.Duration `env:"PRESENCE_ACTIVE_WINDOW" envDefault:"5m"`

	// PresenceStaleWindow bounds how long a presence record may go without a
	// heartbeat before a sweep deletes it.
	PresenceStaleWindow time.Duration `env:"PRESENCE_STALE_WINDOW" envDefault:"1h"`

	// PresenceSweepInterval is how often stale presence records are reclaimed.
	PresenceSweepInterval time.Duration `env:"PRESENCE_SWEEP_INTERVAL" envDefault:"10m"`

	// SchedulerEnabled controls whether sweep jobs run in this process.
	SchedulerEnabled bool `env:"SCHEDULER_ENABLED" envDefault:"true"`
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
		slog.Duration("lock_grant", cfg.Collab.LockGrantDuration),
	)

	return cfg, nil
}

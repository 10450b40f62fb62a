// Package logger provides the shared slog-based application logger.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the application loggers.
var Module = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewZapLogger,
		NewHTTPLogger,
	),
)

// NewLogger creates the root slog logger.
// Level comes from LOG_LEVEL (debug/info/warn/error, default info).
// GO_ENV=production switches to the JSON handler for log aggregation.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// NewZapLogger creates a zap logger for components that require one
// (the goose migrator). Production config in production, development
// config otherwise.
func NewZapLogger() (*zap.Logger, error) {
	if os.Getenv("GO_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Scope returns a slog attribute identifying the logging component.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error returns a slog attribute wrapping an error value.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

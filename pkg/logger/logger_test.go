package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestScope(t *testing.T) {
	attr := Scope("locks.repo")
	if attr.Key != "scope" {
		t.Errorf("Scope() key = %q, want %q", attr.Key, "scope")
	}
	if attr.Value.String() != "locks.repo" {
		t.Errorf("Scope() value = %q, want %q", attr.Value.String(), "locks.repo")
	}
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := Error(err)
	if attr.Key != "error" {
		t.Errorf("Error() key = %q, want %q", attr.Key, "error")
	}
	if attr.Value.Any() != err {
		t.Errorf("Error() value = %v, want %v", attr.Value.Any(), err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"", slog.LevelInfo, slog.LevelDebug},
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"DEBUG", slog.LevelDebug, slog.LevelDebug - 4},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"warning", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"nonsense", slog.LevelInfo, slog.LevelDebug},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("GO_ENV", "")

			log := NewLogger()
			if !log.Enabled(ctx, tt.enabled) {
				t.Errorf("level %v should be enabled for LOG_LEVEL=%q", tt.enabled, tt.level)
			}
			if log.Enabled(ctx, tt.disabled) {
				t.Errorf("level %v should be disabled for LOG_LEVEL=%q", tt.disabled, tt.level)
			}
		})
	}
}

func TestNewLoggerProduction(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GO_ENV", "production")

	log := NewLogger()
	if log == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if !log.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("production logger should have info enabled")
	}
}

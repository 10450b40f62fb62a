// Package server configures the Echo HTTP server and its middleware stack.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nomgrid/nomgrid/internal/config"
	"github.com/nomgrid/nomgrid/pkg/apperror"
	"github.com/nomgrid/nomgrid/pkg/identity"
	"github.com/nomgrid/nomgrid/pkg/logger"
)

var Module = fx.Module("server",
	fx.Provide(NewEcho),
	fx.Invoke(StartServer),
)

// EchoParams are the dependencies for creating an Echo instance
type EchoParams struct {
	fx.In

	Config     *config.Config
	Log        *slog.Logger
	HTTPLogger *logger.HTTPLogger
}

// NewEcho creates the Echo instance with the shared middleware stack.
func NewEcho(p EchoParams) *echo.Echo {
	e := echo.New()
	e.Debug = p.Config.Debug
	e.HideBanner = true
	e.HidePort = !p.Config.Debug
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(p.Log)

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.CORSWithConfig(corsConfig()))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(p.Log, p.HTTPLogger)))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			p.Log.Error("panic recovered",
				logger.Error(err),
				slog.String("stack", string(stack)),
			)
			return nil
		},
	}))

	return e
}

func corsConfig() middleware.CORSConfig {
	return middleware.CORSConfig{
		// Echo echoes the specific origin back; a wildcard is not allowed
		// together with AllowCredentials.
		AllowOriginFunc:  func(origin string) (bool, error) { return true, nil },
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			identity.HeaderUserID, identity.HeaderProjectID, identity.HeaderSessionID,
		},
	}
}

func requestLoggerConfig(log *slog.Logger, httpLogger *logger.HTTPLogger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		// Health probes fire every few seconds and would swamp the log
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/healthz" || path == "/ready"
		},
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, logger.Error(v.Error))
				log.Error("request failed", attrs...)
			} else {
				log.Info("request", attrs...)
			}

			httpLogger.LogRequest(c.RealIP(), v.Method, v.URI, v.Status, v.Latency, c.Request().UserAgent(), v.RequestID)
			return nil
		},
	}
}

// StartServer runs the HTTP server under the fx lifecycle with graceful
// shutdown bounded by cfg.ShutdownTimeout.
func StartServer(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, log *slog.Logger) {
	log = log.With(logger.Scope("server"))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerAddress, cfg.ServerPort),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting HTTP server",
				slog.String("address", srv.Addr),
				slog.String("environment", cfg.Environment),
			)
			go func() {
				if err := e.StartServer(srv); err != nil && err != http.ErrServerClosed {
					log.Error("server error", logger.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	})
}

package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Dinesh02121/project-portal/config"
)

// RunConfig contains everything needed to serve until shutdown.
type RunConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunWithShutdown serves HTTP until SIGINT/SIGTERM, ctx cancellation, or a
// server error, then drains in-flight requests.
func RunWithShutdown(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
	}, errCh)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down services...")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	if err := ShutdownHTTPServer(ctx, server, cfg.Config.HTTP.ShutdownTimeout, logger); err != nil {
		runErr = errors.Join(runErr, err)
	}
	if sink := cfg.Services.Observability.MetricsSink; sink != nil {
		if err := sink.Close(); err != nil {
			logger.Warn("close statsd client failed", "error", err)
		}
	}
	return runErr
}

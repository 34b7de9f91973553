package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Dinesh02121/project-portal/config"
	httpx "github.com/Dinesh02121/project-portal/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := BuildHTTPHandler(appCfg, cfg.Services, cfg.RedisClient, logger)
	return startServer(logger, handler, appCfg.HTTP.Addr, errCh)
}

// BuildHTTPHandler assembles the router with its outer middleware.
// Order: Recover -> Logging -> Router.
func BuildHTTPHandler(
	cfg *config.AppConfig,
	svcs ServiceContainer,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) http.Handler {
	services := httpx.RouterServices{
		Redirects: svcs.Redirects,
		Gate:      svcs.Gate,
		Projects:  svcs.Projects,
		Files:     svcs.Files,
		Analysis:  svcs.Analysis,
		Colleges:  svcs.Colleges,
		Credentials: httpx.CredentialSource{
			Strategy:   credentialKind(cfg.Auth),
			CookieName: cfg.Auth.CookieName,
		},
		Cookie: httpx.SessionCookie{
			Name:   cfg.Auth.CookieName,
			Domain: cfg.HTTP.CookieDomain,
			MaxAge: cfg.HTTP.SessionMaxAge,
		},
		Readiness: readinessChecks(redisClient),
		Logger:    logger,
	}
	if svcs.Auth != nil {
		services.Auth = svcs.Auth
	}

	h := httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h
}

func readinessChecks(redisClient redis.UniversalClient) map[string]httpx.ReadinessCheck {
	if redisClient == nil {
		return nil
	}
	return map[string]httpx.ReadinessCheck{
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	// Write timeout leaves room for multi-minute analysis requests.
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}

package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/Dinesh02121/project-portal/config"
	"github.com/Dinesh02121/project-portal/internal/adapters/backend"
	redisadapter "github.com/Dinesh02121/project-portal/internal/adapters/redis"
	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/observability/notify/slack"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
	"github.com/Dinesh02121/project-portal/internal/ports"
	"github.com/Dinesh02121/project-portal/internal/service"
	"github.com/Dinesh02121/project-portal/internal/service/decisionnotifier"
)

// ServiceContainer holds every service the gateway routes to.
type ServiceContainer struct {
	Auth      *service.AuthService
	Verifier  *service.SessionVerifier
	Gate      *service.AccessGate
	Redirects *service.RedirectRouter
	Projects  *service.LifecycleService
	Files     *service.FileNavigator
	Analysis  *service.AnalysisService
	Colleges  *service.CollegeService
	Backend   *backend.Client

	Observability ObservabilityContainer
}

// ObservabilityContainer groups metrics and notification plumbing.
type ObservabilityContainer struct {
	MetricsSink      *statsd.Client
	DecisionNotifier *decisionnotifier.Service
}

// ServiceDeps contains the infrastructure services are built on.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient backs the advisory badge cache. Nil disables badges.
	RedisClient redis.UniversalClient
	// Transport overrides the backend HTTP transport (tests).
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// NewServices wires the backend adapter, badge cache, and domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require an AppConfig")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, cfg)

	client, err := backend.NewClient(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		Strategy:   credentialKind(cfg.Auth),
		CookieName: cfg.Auth.CookieName,
		Timeout:    cfg.Backend.Timeout,
		Transport:  deps.Transport,
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("backend client: %w", err)
	}

	advisory := NewAdvisoryCache(deps.RedisClient, cfg.Redis)

	sink := metricsSink(obs.MetricsSink)
	verifier := service.NewSessionVerifier(service.SessionVerifierOptions{
		Authority: client,
		Strategy:  credentialKind(cfg.Auth),
		Timeout:   cfg.Auth.VerifyTimeout,
		Metrics:   sink,
		Logger:    logger,
	})

	analysis, err := service.NewAnalysisService(service.AnalysisServiceOptions{
		Oracle:  client,
		Fields:  analysisFields(cfg.Analysis),
		Timeout: cfg.Analysis.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("analysis service: %w", err)
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Authority: client,
			Advisory:  advisory,
			BadgeTTL:  cfg.Auth.BadgeTTL,
			Logger:    logger,
		}),
		Verifier: verifier,
		Gate: service.NewAccessGate(service.AccessGateOptions{
			Verifier:     verifier,
			Advisory:     advisory,
			RetryBackoff: cfg.Auth.RetryBackoff,
			BadgeTTL:     cfg.Auth.BadgeTTL,
			Metrics:      sink,
			Logger:       logger,
		}),
		Redirects: service.NewRedirectRouter(service.RedirectRouterOptions{
			LoginPath: cfg.Auth.LoginPath,
		}),
		Projects: service.NewLifecycleService(service.LifecycleServiceOptions{
			Backend:        client,
			Notifier:       obs.DecisionNotifier,
			CommandTimeout: cfg.Backend.CommandTimeout,
			Metrics:        sink,
			Logger:         logger,
		}),
		Files: service.NewFileNavigator(service.FileNavigatorOptions{
			Store:    client,
			Projects: client,
			Timeout:  cfg.Backend.CommandTimeout,
			Logger:   logger,
		}),
		Colleges: service.NewCollegeService(service.CollegeServiceOptions{
			Registry: client,
			Timeout:  cfg.Backend.CommandTimeout,
			Logger:   logger,
		}),
		Analysis:      analysis,
		Backend:       client,
		Observability: obs,
	}, nil
}

func credentialKind(cfg config.AuthConfig) domainauth.CredentialKind {
	if cfg.IsBearer() {
		return domainauth.CredentialBearer
	}
	return domainauth.CredentialCookie
}

// NewAdvisoryCache returns nil when Redis is not connected so the services
// see a nil interface rather than a typed nil.
//
//nolint:ireturn // the badge cache is optional and consumed through its port.
func NewAdvisoryCache(client redis.UniversalClient, cfg config.RedisConfig) ports.AdvisoryCache {
	if client == nil {
		return nil
	}
	if cfg.KeyPrefix != "" {
		return redisadapter.NewAdvisoryCacheWithPrefix(client, cfg.KeyPrefix)
	}
	return redisadapter.NewAdvisoryCache(client)
}

//nolint:ireturn // a nil sink must stay a nil interface.
func metricsSink(client *statsd.Client) statsd.Sink {
	if client == nil {
		return nil
	}
	return client
}

// analysisFields overlays configured JMESPath expressions on the defaults.
func analysisFields(cfg config.AnalysisConfig) service.AnalysisFields {
	fields := service.DefaultAnalysisFields()
	overlay := func(dst *string, expr string) {
		if expr != "" {
			*dst = expr
		}
	}
	overlay(&fields.OverallGrade, cfg.OverallGrade)
	overlay(&fields.CodeQualityScore, cfg.CodeQualityScore)
	overlay(&fields.DetectedTechStack, cfg.DetectedTechStack)
	overlay(&fields.Strengths, cfg.Strengths)
	overlay(&fields.Weaknesses, cfg.Weaknesses)
	overlay(&fields.Recommendations, cfg.Recommendations)
	overlay(&fields.DetailedAnalysis, cfg.DetailedAnalysis)
	return fields
}

func buildObservability(logger *slog.Logger, cfg *config.AppConfig) ObservabilityContainer {
	var metricsSink *statsd.Client
	if cfg.Observability.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Observability.Metrics.StatsdAddress,
			Prefix:  "portal",
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:      metricsSink,
		DecisionNotifier: buildDecisionNotifier(logger, cfg.Observability.Notifications, cfg.HTTP.BaseURL),
	}
}

func buildDecisionNotifier(
	logger *slog.Logger,
	cfg config.ObservabilityNotificationsConfig,
	baseURL string,
) *decisionnotifier.Service {
	if !cfg.Enabled || !cfg.Slack.Enabled {
		return decisionnotifier.NewService(decisionnotifier.Options{Logger: logger})
	}

	prefix := cfg.Slack.ProjectURLPrefix
	if prefix == "" && baseURL != "" {
		prefix = baseURL + "/faculty/projects/"
	}

	var sinks []decisionnotifier.SinkRegistration
	client, err := slack.NewClient(slack.Config{
		WebhookURL:       cfg.Slack.WebhookURL,
		Channel:          cfg.Slack.Channel,
		Username:         cfg.Slack.Username,
		Timeout:          cfg.Timeout,
		RetryLimit:       cfg.RetryLimit,
		ProjectURLPrefix: prefix,
	})
	if err != nil {
		logger.Error("failed to initialise slack notifier", "error", err)
	} else {
		sinks = append(sinks, decisionnotifier.SinkRegistration{Name: "slack", Sink: client})
	}

	return decisionnotifier.NewService(decisionnotifier.Options{
		Logger: logger,
		Sinks:  sinks,
	})
}

package decisionnotifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Dinesh02121/project-portal/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the decision notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
}

// Service dispatches decision events to all registered sinks concurrently.
type Service struct {
	logger *slog.Logger
	sinks  []SinkRegistration
}

var _ notify.Sink = (*Service)(nil)

// NewService constructs a decision notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{Name: name, Sink: entry.Sink})
	}

	return &Service{
		logger: logger.With("component", "decision_notifier"),
		sinks:  sinks,
	}
}

// SendDecision fans the payload out to every sink and joins their errors.
// Payloads without an outcome are dropped.
func (s *Service) SendDecision(ctx context.Context, payload notify.DecisionPayload) error {
	if len(s.sinks) == 0 {
		return nil
	}
	if strings.TrimSpace(payload.Outcome) == "" {
		s.logger.DebugContext(ctx, "skipping decision without outcome", "project_id", payload.ProjectID)
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendDecision(ctx, payload); err != nil {
				s.logger.Error("decision notifier delivery error",
					"sink", entry.Name,
					"project_id", payload.ProjectID,
					"outcome", payload.Outcome,
					"error", err,
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", entry.Name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}

package notify

import (
	"context"
	"time"
)

// DecisionPayload captures a faculty verdict on a project.
type DecisionPayload struct {
	ProjectID    string
	ProjectTitle string
	Command      string
	Outcome      string
	Status       string
	ActorEmail   string
	ActorRole    string
	OccurredAt   time.Time
	Metadata     map[string]string
}

// Sink describes a destination capable of consuming decision notifications.
type Sink interface {
	SendDecision(ctx context.Context, payload DecisionPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload DecisionPayload) error

// SendDecision implements the Sink interface.
func (f SinkFunc) SendDecision(ctx context.Context, payload DecisionPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}

// Nop discards every notification.
var Nop Sink = SinkFunc(nil)

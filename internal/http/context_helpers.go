package httpx

import (
	"context"

	"github.com/Dinesh02121/project-portal/internal/service"
)

// callerKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type callerKey struct{}

type requestIDKey struct{}

// SetCallerInContext returns a child context that carries the verified caller.
// A caller without a role is not stored.
func SetCallerInContext(ctx context.Context, caller service.Caller) context.Context {
	if caller.Identity.Role == "" {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the verified caller and a boolean indicating presence.
// Only the access gate middleware stores a caller, so presence implies a Granted decision.
func CallerFromContext(ctx context.Context) (service.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(service.Caller)
	return caller, ok
}

// SetRequestIDInContext returns a child context carrying id.
func SetRequestIDInContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request correlation id, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

package ports

// Package ports defines interfaces (hexagonal ports) between the gateway core
// and the backend-of-record. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
)

// VerifiedPrincipal is the raw answer of the backend's "who am I" endpoint.
// RawRole has not been normalized.
type VerifiedPrincipal struct {
	Subject string
	Email   string
	RawRole string
}

// LoginInput carries the credentials forwarded to the backend login endpoints.
type LoginInput struct {
	Email    string
	Password string
	Admin    bool
}

// LoginResult is the backend's answer to a successful login. Credential is
// ready to be handed back to the caller in the deployment's strategy.
type LoginResult struct {
	Credential domainauth.Credential
	RawRole    string
	Email      string
	Message    string
}

// IdentityAuthority is the backend authority for credentials.
type IdentityAuthority interface {
	// Verify performs exactly one network call. Failures are AppErrors:
	// authentication for 401/403, transient for timeouts and 5xx.
	Verify(ctx context.Context, cred domainauth.Credential) (VerifiedPrincipal, error)

	// Login exchanges user credentials for a session credential.
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
}

// AdvisoryCache stores display-only role badges keyed by credential fingerprint.
type AdvisoryCache interface {
	Put(ctx context.Context, fingerprint string, badge domainauth.Badge, ttl time.Duration) error
	Get(ctx context.Context, fingerprint string) (domainauth.Badge, error)
	Delete(ctx context.Context, fingerprint string) error
}

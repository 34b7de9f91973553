package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/observability/metrics"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// DefaultVerifyTimeout bounds one round trip to the identity authority.
const DefaultVerifyTimeout = 5 * time.Second

// Verifier turns a credential into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, cred domainauth.Credential) (domainauth.Identity, error)
}

// SessionVerifierOptions groups dependencies for SessionVerifier.
type SessionVerifierOptions struct {
	Authority ports.IdentityAuthority
	// Strategy is the only credential kind this deployment accepts.
	Strategy domainauth.CredentialKind
	Timeout  time.Duration
	Metrics  statsd.Sink
	Logger   *slog.Logger
	Now      func() time.Time
}

// SessionVerifier asks the identity authority who owns a credential.
// Concurrent calls for the same credential share one request.
type SessionVerifier struct {
	authority ports.IdentityAuthority
	strategy  domainauth.CredentialKind
	timeout   time.Duration
	metrics   statsd.Sink
	logger    *slog.Logger
	now       func() time.Time

	group singleflight.Group
}

var _ Verifier = (*SessionVerifier)(nil)

// NewSessionVerifier constructs a SessionVerifier.
func NewSessionVerifier(opts SessionVerifierOptions) *SessionVerifier {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionVerifier{
		authority: opts.Authority,
		strategy:  opts.Strategy,
		timeout:   timeout,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "session_verifier"),
		now:       now,
	}
}

// Strategy returns the credential kind this verifier accepts.
func (v *SessionVerifier) Strategy() domainauth.CredentialKind { return v.strategy }

// Verify returns the identity behind cred or a *domainauth.VerificationFailure.
// If ctx ends first the caller gets ctx.Err() and the shared result, when it
// arrives, is not applied for that caller.
func (v *SessionVerifier) Verify(ctx context.Context, cred domainauth.Credential) (domainauth.Identity, error) {
	if cred.Empty() || (v.strategy != "" && cred.Kind != v.strategy) {
		metrics.EmitVerify(v.metrics, metrics.VerifyMetric{Outcome: string(domainauth.FailureUnauthenticated)})
		return domainauth.Identity{}, &domainauth.VerificationFailure{Reason: domainauth.FailureUnauthenticated}
	}

	start := time.Now()
	ch := v.group.DoChan(cred.Fingerprint(), func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), v.timeout)
		defer cancel()
		return v.verifyOnce(callCtx, cred)
	})

	select {
	case <-ctx.Done():
		return domainauth.Identity{}, ctx.Err()
	case res := <-ch:
		outcome := "ok"
		var failure *domainauth.VerificationFailure
		if errors.As(res.Err, &failure) {
			outcome = string(failure.Reason)
		}
		metrics.EmitVerify(v.metrics, metrics.VerifyMetric{Outcome: outcome, Shared: res.Shared, Duration: time.Since(start)})
		if res.Err != nil {
			return domainauth.Identity{}, res.Err
		}
		return res.Val.(domainauth.Identity), nil
	}
}

func (v *SessionVerifier) verifyOnce(ctx context.Context, cred domainauth.Credential) (domainauth.Identity, error) {
	principal, err := v.authority.Verify(ctx, cred)
	if err != nil {
		reason := failureReason(err)
		v.logger.Debug("session verification failed",
			"fingerprint", cred.ShortFingerprint(),
			"reason", reason,
			"error", err)
		return domainauth.Identity{}, &domainauth.VerificationFailure{Reason: reason, Cause: err}
	}

	role, err := domainauth.Normalize(principal.RawRole)
	if err != nil {
		v.logger.Warn("verified session carries unknown role",
			"fingerprint", cred.ShortFingerprint(),
			"raw_role", principal.RawRole)
		return domainauth.Identity{}, &domainauth.VerificationFailure{Reason: domainauth.FailureMalformed, Cause: err}
	}

	subject := strings.TrimSpace(principal.Subject)
	if subject == "" {
		subject = strings.TrimSpace(principal.Email)
	}
	return domainauth.Identity{
		Subject:    subject,
		Role:       role,
		Email:      principal.Email,
		VerifiedAt: v.now().UTC(),
	}, nil
}

func failureReason(err error) domainauth.FailureReason {
	switch {
	case errors.Is(err, context.DeadlineExceeded), apperrors.IsTransient(err):
		return domainauth.FailureTimeout
	case apperrors.IsAuthentication(err),
		apperrors.IsAuthorization(err),
		apperrors.IsValidation(err),
		apperrors.IsNotFound(err):
		return domainauth.FailureUnauthenticated
	default:
		return domainauth.FailureMalformed
	}
}

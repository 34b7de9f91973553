package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/observability/metrics"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// Gate defaults.
const (
	DefaultRetryBackoff = 250 * time.Millisecond
	DefaultBadgeTTL     = 15 * time.Minute
	advisoryTimeout     = 2 * time.Second
)

// ErrMountClosed is returned when a mount is closed before its decision settles.
var ErrMountClosed = errors.New("access gate mount closed")

// AccessGateOptions groups dependencies for AccessGate.
type AccessGateOptions struct {
	Verifier Verifier
	// Advisory holds UI role badges. Optional; never read here.
	Advisory     ports.AdvisoryCache
	RetryBackoff time.Duration
	BadgeTTL     time.Duration
	Metrics      statsd.Sink
	Logger       *slog.Logger
}

// AccessGate decides whether a credential may enter a protected view.
type AccessGate struct {
	verifier Verifier
	advisory ports.AdvisoryCache
	backoff  time.Duration
	badgeTTL time.Duration
	metrics  statsd.Sink
	logger   *slog.Logger
}

// NewAccessGate constructs an AccessGate.
func NewAccessGate(opts AccessGateOptions) *AccessGate {
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	ttl := opts.BadgeTTL
	if ttl <= 0 {
		ttl = DefaultBadgeTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessGate{
		verifier: opts.Verifier,
		advisory: opts.Advisory,
		backoff:  backoff,
		badgeTTL: ttl,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "access_gate"),
	}
}

// MountOption customises a Mount.
type MountOption func(*Mount)

// WithCredentialClearer registers fn to run when the mount settles to
// Unauthenticated. Denied decisions keep the credential: a timeout or a role
// mismatch says nothing about whether the session is still valid.
//
// fn runs on the verification goroutine, before Authorize returns the settled
// decision, and may still run after the request that mounted it has ended.
// It must not write to an http.ResponseWriter; record the request and act on
// it after Authorize returns.
func WithCredentialClearer(fn func()) MountOption {
	return func(m *Mount) { m.onClear = fn }
}

// Mount is one protected-view lifecycle. It starts Loading and settles at
// most once.
type Mount struct {
	id      string
	gate    *AccessGate
	allowed domainauth.RoleSet
	latch   *Latch
	onClear func()

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}

	mu       sync.Mutex
	closed   bool
	decision domainauth.AccessDecision
}

// Mount starts a fresh Loading lifecycle for allowed. The mount ends when
// ctx ends or Close is called.
func (g *AccessGate) Mount(ctx context.Context, allowed domainauth.RoleSet, opts ...MountOption) *Mount {
	mctx, cancel := context.WithCancel(ctx)
	m := &Mount{
		id:       uuid.NewString(),
		gate:     g,
		allowed:  allowed,
		latch:    NewLatch(),
		ctx:      mctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		decision: domainauth.Loading(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authorize mounts, settles and closes in one call.
func (g *AccessGate) Authorize(ctx context.Context, allowed domainauth.RoleSet, cred domainauth.Credential, opts ...MountOption) (domainauth.AccessDecision, error) {
	m := g.Mount(ctx, allowed, opts...)
	defer m.Close()
	return m.Authorize(ctx, cred)
}

// ID identifies the mount in logs.
func (m *Mount) ID() string { return m.id }

// Latch is the one-shot redirect latch owned by this mount.
func (m *Mount) Latch() *Latch { return m.latch }

// Decision returns the current decision.
func (m *Mount) Decision() domainauth.AccessDecision {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decision
}

// Authorize settles the mount for cred. Only the first call starts a
// verification; later calls wait for and return the same decision.
func (m *Mount) Authorize(ctx context.Context, cred domainauth.Credential) (domainauth.AccessDecision, error) {
	m.once.Do(func() {
		go m.resolve(cred)
	})

	select {
	case <-m.done:
	case <-m.ctx.Done():
	case <-ctx.Done():
		return m.Decision(), ctx.Err()
	}

	d := m.Decision()
	if !d.IsTerminal() {
		return d, ErrMountClosed
	}
	return d, nil
}

// Close ends the mount. An unsettled decision stays Loading and any late
// verification result is discarded.
func (m *Mount) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cancel()
}

func (m *Mount) resolve(cred domainauth.Credential) {
	defer close(m.done)

	d := m.gate.decide(m.ctx, m.allowed, cred)
	if !d.IsTerminal() {
		return
	}

	m.mu.Lock()
	if m.closed || m.ctx.Err() != nil {
		m.mu.Unlock()
		m.gate.logger.Debug("discarding late access decision", "mount", m.id, "state", d.State)
		return
	}
	m.decision = d
	m.mu.Unlock()

	m.gate.afterSettle(m, cred, d)
}

// decide runs verification for one mount. It returns Loading when ctx ends
// before a decision is reached.
func (g *AccessGate) decide(ctx context.Context, allowed domainauth.RoleSet, cred domainauth.Credential) domainauth.AccessDecision {
	for attempt := 0; ; attempt++ {
		id, err := g.verifier.Verify(ctx, cred)
		if ctx.Err() != nil {
			return domainauth.Loading()
		}
		if err == nil {
			if allowed.Contains(id.Role) {
				return domainauth.Granted(id)
			}
			return domainauth.Denied(domainauth.ReasonRoleMismatch)
		}

		var failure *domainauth.VerificationFailure
		if !errors.As(err, &failure) {
			g.logger.Warn("verifier returned untyped error", "error", err)
			return domainauth.Denied(domainauth.ReasonUnreachable)
		}
		switch failure.Reason {
		case domainauth.FailureUnauthenticated:
			return domainauth.Unauthenticated()
		case domainauth.FailureMalformed:
			return domainauth.Denied(domainauth.ReasonUnknownRole)
		}

		if attempt > 0 {
			return domainauth.Denied(domainauth.ReasonUnreachable)
		}
		g.logger.Debug("verification timed out, retrying",
			"fingerprint", cred.ShortFingerprint(),
			"backoff", g.backoff)
		if !sleepCtx(ctx, g.backoff) {
			return domainauth.Loading()
		}
	}
}

func (g *AccessGate) afterSettle(m *Mount, cred domainauth.Credential, d domainauth.AccessDecision) {
	metrics.EmitAccessDecision(g.metrics, string(d.State), d.Reason)
	g.logger.Debug("access decision settled",
		"mount", m.id,
		"state", d.State,
		"reason", d.Reason)

	if d.IsGranted() {
		g.refreshBadge(cred, *d.Identity)
		return
	}
	g.clearBadge(cred)
	if d.State == domainauth.DecisionUnauthenticated && m.onClear != nil {
		m.onClear()
	}
}

func (g *AccessGate) refreshBadge(cred domainauth.Credential, id domainauth.Identity) {
	if g.advisory == nil || cred.Empty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), advisoryTimeout)
	defer cancel()
	if err := g.advisory.Put(ctx, cred.Fingerprint(), domainauth.BadgeFor(id), g.badgeTTL); err != nil {
		g.logger.Debug("advisory badge refresh failed", "error", err)
	}
}

func (g *AccessGate) clearBadge(cred domainauth.Credential) {
	if g.advisory == nil || cred.Empty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), advisoryTimeout)
	defer cancel()
	if err := g.advisory.Delete(ctx, cred.Fingerprint()); err != nil {
		g.logger.Debug("advisory badge clear failed", "error", err)
	}
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

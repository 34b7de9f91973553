package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityAuthority = (*StubAuthority)(nil)
	_ ports.AdvisoryCache     = (*MemoryAdvisoryCache)(nil)
)

// StubAuthority answers verification from a table of tokens and counts the
// network calls it would have made.
type StubAuthority struct {
	VerifyFunc func(ctx context.Context, cred domainauth.Credential) (ports.VerifiedPrincipal, error)
	LoginFunc  func(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error)

	// Principals maps credential values to the principal returned for them.
	Principals map[string]ports.VerifiedPrincipal
	// Delay is applied to every Verify call; it honours ctx cancellation.
	Delay time.Duration
	// Release, when set, blocks Verify until it is closed.
	Release chan struct{}

	calls atomic.Int64
}

// NewStubAuthority returns an authority knowing the given token→role pairs.
func NewStubAuthority(roles map[string]string) *StubAuthority {
	principals := make(map[string]ports.VerifiedPrincipal, len(roles))
	for token, role := range roles {
		principals[token] = ports.VerifiedPrincipal{Subject: "user-" + token, Email: token + "@example.edu", RawRole: role}
	}
	return &StubAuthority{Principals: principals}
}

// Calls returns the number of Verify invocations.
func (s *StubAuthority) Calls() int64 { return s.calls.Load() }

func (s *StubAuthority) Verify(ctx context.Context, cred domainauth.Credential) (ports.VerifiedPrincipal, error) {
	s.calls.Add(1)
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return ports.VerifiedPrincipal{}, apperrors.FromTransport(ctx.Err(), "verify")
		}
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ports.VerifiedPrincipal{}, apperrors.FromTransport(ctx.Err(), "verify")
		}
	}
	if s.VerifyFunc != nil {
		return s.VerifyFunc(ctx, cred)
	}
	p, ok := s.Principals[cred.Value]
	if !ok {
		return ports.VerifiedPrincipal{}, apperrors.Authentication("session is not valid")
	}
	return p, nil
}

func (s *StubAuthority) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	for token, p := range s.Principals {
		if p.Email == in.Email {
			return ports.LoginResult{
				Credential: domainauth.Credential{Kind: domainauth.CredentialCookie, Value: token},
				RawRole:    p.RawRole,
				Email:      p.Email,
				Message:    "Login successful",
			}, nil
		}
	}
	return ports.LoginResult{}, apperrors.Authentication("invalid email or password")
}

// MemoryAdvisoryCache is an in-memory advisory cache for unit tests.
type MemoryAdvisoryCache struct {
	mu      sync.Mutex
	badges  map[string]domainauth.Badge
	deletes int
}

// NewMemoryAdvisoryCache creates an empty cache.
func NewMemoryAdvisoryCache() *MemoryAdvisoryCache {
	return &MemoryAdvisoryCache{badges: make(map[string]domainauth.Badge)}
}

func (m *MemoryAdvisoryCache) Put(_ context.Context, fingerprint string, badge domainauth.Badge, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badges[fingerprint] = badge
	return nil
}

func (m *MemoryAdvisoryCache) Get(_ context.Context, fingerprint string) (domainauth.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.badges[fingerprint]
	if !ok {
		return domainauth.Badge{}, apperrors.NotFound("badge not found")
	}
	return b, nil
}

func (m *MemoryAdvisoryCache) Delete(_ context.Context, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.badges, fingerprint)
	m.deletes++
	return nil
}

// Has reports whether a badge is stored for fingerprint.
func (m *MemoryAdvisoryCache) Has(fingerprint string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.badges[fingerprint]
	return ok
}

// Deletes returns the number of Delete calls.
func (m *MemoryAdvisoryCache) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

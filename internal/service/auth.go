package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Authority ports.IdentityAuthority
	Advisory  ports.AdvisoryCache
	BadgeTTL  time.Duration
	Logger    *slog.Logger
	Now       func() time.Time
}

// AuthService orchestrates login and logout against the identity authority
// and keeps the advisory badge in step.
type AuthService struct {
	authority ports.IdentityAuthority
	advisory  ports.AdvisoryCache
	badgeTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.BadgeTTL
	if ttl <= 0 {
		ttl = DefaultBadgeTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		authority: opts.Authority,
		advisory:  opts.Advisory,
		badgeTTL:  ttl,
		logger:    logger.With("component", "auth"),
		now:       now,
	}
}

// LoginResult contains the session credential issued by the backend and the
// advisory badge seeded for it.
type LoginResult struct {
	Credential domainauth.Credential
	Badge      domainauth.Badge
	Message    string
}

// Login forwards credentials to the backend. The role it reports is only
// used for the advisory badge; access decisions always re-verify.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if in.Password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	res, err := s.authority.Login(ctx, in)
	if err != nil {
		return nil, err
	}

	role, err := domainauth.Normalize(res.RawRole)
	if err != nil {
		s.logger.Warn("login returned unknown role", "raw_role", res.RawRole)
		return nil, err
	}

	badge := domainauth.Badge{
		Role:     role,
		Email:    res.Email,
		Advisory: true,
		CachedAt: s.now().UTC(),
	}
	if s.advisory != nil {
		if putErr := s.advisory.Put(ctx, res.Credential.Fingerprint(), badge, s.badgeTTL); putErr != nil {
			s.logger.Debug("seed advisory badge failed", "error", putErr)
		}
	}

	s.logger.Info("login succeeded",
		"fingerprint", res.Credential.ShortFingerprint(),
		"role", role,
		"admin", in.Admin)
	return &LoginResult{Credential: res.Credential, Badge: badge, Message: res.Message}, nil
}

// Badge returns the advisory badge for cred. It must never be used to grant
// access.
func (s *AuthService) Badge(ctx context.Context, cred domainauth.Credential) (domainauth.Badge, error) {
	if cred.Empty() || s.advisory == nil {
		return domainauth.Badge{}, apperrors.NotFound("no advisory badge")
	}
	badge, err := s.advisory.Get(ctx, cred.Fingerprint())
	if err != nil {
		return domainauth.Badge{}, err
	}
	badge.Advisory = true
	return badge, nil
}

// Logout drops the advisory badge. The credential itself is cleared by the
// transport.
func (s *AuthService) Logout(ctx context.Context, cred domainauth.Credential) error {
	if cred.Empty() || s.advisory == nil {
		return nil // Nothing to logout
	}
	if err := s.advisory.Delete(ctx, cred.Fingerprint()); err != nil {
		return fmt.Errorf("delete advisory badge: %w", err)
	}
	return nil
}

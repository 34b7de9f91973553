package config

import (
	"fmt"
	"strings"
	"time"
)

// CredentialStrategy selects how callers present their session credential.
// A deployment accepts exactly one strategy.
type CredentialStrategy string

const (
	// CredentialStrategyCookie carries the session in an HttpOnly cookie.
	CredentialStrategyCookie CredentialStrategy = "cookie"
	// CredentialStrategyBearer carries the session in an Authorization header.
	CredentialStrategyBearer CredentialStrategy = "bearer"
)

// UnmarshalText implements encoding.TextUnmarshaler for CredentialStrategy.
func (s *CredentialStrategy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "cookie", "bearer":
		*s = CredentialStrategy(v)
		return nil
	default:
		return fmt.Errorf("invalid CredentialStrategy: %q (valid options: cookie, bearer)", v)
	}
}

const (
	defaultCookieName    = "token"
	defaultLoginPath     = "/auth/login"
	defaultVerifyTimeout = 5 * time.Second
	defaultRetryBackoff  = 250 * time.Millisecond
	defaultBadgeTTL      = 15 * time.Minute
)

// AuthConfig groups credential handling and access gate tuning.
type AuthConfig struct {
	// Strategy determines which credential kind the portal accepts.
	Strategy CredentialStrategy `env:"AUTH_STRATEGY" envDefault:"cookie"`

	// CookieName is the session cookie name shared with the backend.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"token"`

	// LoginPath is where unauthenticated and denied callers are sent.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/auth/login"`

	// VerifyTimeout bounds one identity verification round trip.
	VerifyTimeout time.Duration `env:"AUTH_VERIFY_TIMEOUT" envDefault:"5s"`

	// RetryBackoff is the pause before the single retry of an unreachable verification.
	RetryBackoff time.Duration `env:"AUTH_RETRY_BACKOFF" envDefault:"250ms"`

	// BadgeTTL bounds how long an advisory role badge is cached.
	BadgeTTL time.Duration `env:"AUTH_BADGE_TTL" envDefault:"15m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Strategy == "" {
		a.Strategy = CredentialStrategyCookie
	}
	if a.CookieName = strings.TrimSpace(a.CookieName); a.CookieName == "" {
		a.CookieName = defaultCookieName
	}
	if a.LoginPath = strings.TrimSpace(a.LoginPath); a.LoginPath == "" || !strings.HasPrefix(a.LoginPath, "/") {
		a.LoginPath = defaultLoginPath
	}
	if a.VerifyTimeout <= 0 {
		a.VerifyTimeout = defaultVerifyTimeout
	}
	if a.RetryBackoff < 0 {
		a.RetryBackoff = defaultRetryBackoff
	}
	if a.BadgeTTL <= 0 {
		a.BadgeTTL = defaultBadgeTTL
	}
}

// IsBearer reports whether callers present the credential as a bearer token.
func (a *AuthConfig) IsBearer() bool {
	return a.Strategy == CredentialStrategyBearer
}

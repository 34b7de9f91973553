package config

import "time"

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultSessionMaxAge   = 24 * time.Hour
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the public URL of the portal (e.g., "https://portal.example.edu").
	// Used for project links in decision notifications.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// SessionMaxAge bounds the lifetime of the session cookie set on login.
	SessionMaxAge time.Duration `env:"APP_SESSION_MAX_AGE" envDefault:"24h"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	if h.SessionMaxAge <= 0 {
		h.SessionMaxAge = defaultSessionMaxAge
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = defaultShutdownTimeout
	}
}

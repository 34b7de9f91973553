package config

import (
	"strings"
	"time"
)

const (
	defaultBackendTimeout = 30 * time.Second
	defaultCommandTimeout = 10 * time.Second
)

// BackendConfig points the portal at the backend of record.
type BackendConfig struct {
	// BaseURL is the root of the backend API, e.g. "http://localhost:8081".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8081"`

	// Timeout bounds a single backend request that carries no deadline of its own.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// CommandTimeout bounds one lifecycle command or file request end to end.
	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = defaultBackendTimeout
	}
	if b.CommandTimeout <= 0 {
		b.CommandTimeout = defaultCommandTimeout
	}
}

// RedisConfig contains Redis configuration for the advisory badge cache.
// Access decisions never depend on the cache, so a disabled cache only
// loses role badges.
type RedisConfig struct {
	Enabled            bool     `env:"ENABLED"              envDefault:"true"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
	KeyPrefix          string   `env:"KEY_PREFIX"           envDefault:""`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.KeyPrefix = strings.TrimSpace(r.KeyPrefix)
	if r.UseCluster && r.UseSentinel {
		r.UseSentinel = false
	}
	if r.URI == "" && !r.UseCluster && !r.UseSentinel {
		r.Enabled = false
	}
}

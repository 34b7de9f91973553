package redis

// Package redis provides Redis-based adapters for the portal gateway.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// DefaultBadgeTTL applies when Put is called without a TTL.
const DefaultBadgeTTL = 15 * time.Minute

// AdvisoryCache stores display-only role badges keyed by credential
// fingerprint. Entries are never read for an access decision.
type AdvisoryCache struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.AdvisoryCache = (*AdvisoryCache)(nil)

// NewAdvisoryCache creates a Redis-backed advisory cache.
func NewAdvisoryCache(client redis.UniversalClient) *AdvisoryCache {
	return NewAdvisoryCacheWithPrefix(client, "portal:badge:")
}

// NewAdvisoryCacheWithPrefix creates an advisory cache with a custom key prefix.
func NewAdvisoryCacheWithPrefix(client redis.UniversalClient, prefix string) *AdvisoryCache {
	return &AdvisoryCache{client: client, prefix: prefix}
}

func (c *AdvisoryCache) Put(ctx context.Context, fingerprint string, badge domainauth.Badge, ttl time.Duration) error {
	if fingerprint == "" {
		return errors.New("fingerprint cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultBadgeTTL
	}
	badge.Advisory = true

	data, err := json.Marshal(badge)
	if err != nil {
		return fmt.Errorf("marshal badge: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+fingerprint, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *AdvisoryCache) Get(ctx context.Context, fingerprint string) (domainauth.Badge, error) {
	if fingerprint == "" {
		return domainauth.Badge{}, apperrors.NotFound("badge not found")
	}

	data, err := c.client.Get(ctx, c.prefix+fingerprint).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Badge{}, apperrors.NotFound("badge not found")
		}
		return domainauth.Badge{}, fmt.Errorf("redis get: %w", err)
	}

	var badge domainauth.Badge
	if err := json.Unmarshal(data, &badge); err != nil {
		// A corrupt advisory entry is dropped rather than surfaced.
		if delErr := c.Delete(ctx, fingerprint); delErr != nil {
			return domainauth.Badge{}, fmt.Errorf("cleanup corrupt badge: %w", delErr)
		}
		return domainauth.Badge{}, apperrors.NotFound("badge not found")
	}
	badge.Advisory = true
	return badge, nil
}

func (c *AdvisoryCache) Delete(ctx context.Context, fingerprint string) error {
	if fingerprint == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+fingerprint).Err()
}

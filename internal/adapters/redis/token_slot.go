// Package redis provides Redis-backed token slots for browser sessions.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ragportal/portal-ui/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "portal:token:"
	defaultTokenTTL  = 24 * time.Hour
)

// TokenStoreOptions configures TokenStore.
type TokenStoreOptions struct {
	Prefix string        // key prefix (default "portal:token:")
	TTL    time.Duration // key lifetime, refreshed on every Save (default 24h)
}

// TokenStore hands out one token slot per browser id. Each slot is a single
// Redis string key holding the bearer token; a missing key means anonymous.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewTokenStore creates a Redis-backed TokenStore.
func NewTokenStore(client redis.UniversalClient, opts TokenStoreOptions) *TokenStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenStore{client: client, prefix: prefix, ttl: ttl}
}

// Slot returns the token slot for browserID.
func (s *TokenStore) Slot(browserID string) *TokenSlot {
	return &TokenSlot{client: s.client, key: s.prefix + browserID, ttl: s.ttl}
}

// TokenSlot is the durable token storage of one browser.
type TokenSlot struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

var _ ports.TokenStorage = (*TokenSlot)(nil)

// Key returns the Redis key backing the slot.
func (s *TokenSlot) Key() string { return s.key }

func (s *TokenSlot) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return strings.TrimSpace(token), nil
}

func (s *TokenSlot) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore counts requests in fixed windows shared across replicas:
// INCR on a per-key counter whose TTL is set to the window on first hit.
type RedisStore struct {
	client *redis.Client
	policy Policy
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string, policy Policy) *RedisStore {
	return &RedisStore{client: client, policy: policy, prefix: prefix}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (Decision, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", s.prefix, key)
	now := time.Now()

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, s.policy.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire %s: %w", k, err)
		}
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = s.policy.Window
	}

	dec := Decision{
		Allowed: count <= int64(s.policy.Limit),
		Limit:   s.policy.Limit,
		Reset:   now.Add(ttl),
	}
	if remaining := s.policy.Limit - int(count); remaining > 0 {
		dec.Remaining = remaining
	}
	if !dec.Allowed {
		dec.RetryAfter = ttl
	}
	return dec, nil
}

// Package ratelimit holds the per-client request counters backing the
// HTTP rate-limit middleware.
package ratelimit

import (
	"context"
	"time"
)

// Policy caps request volume per key within a window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of one Allow call, with everything the
// middleware needs to emit X-RateLimit-* and Retry-After headers.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // meaningful only when !Allowed
	Reset      time.Time
}

// Store decides whether the request identified by key may proceed.
// Implementations must count atomically under concurrent hits on one key.
type Store interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

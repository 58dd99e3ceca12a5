package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryStore keeps a token bucket per key (x/time/rate) with the refill
// rate derived from the policy: Limit tokens per Window, burst = Limit.
// Idle keys are dropped by a periodic janitor.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	policy       Policy
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewMemoryStore(policy Policy) *MemoryStore {
	return &MemoryStore{
		entries:      make(map[string]*memoryEntry),
		policy:       policy,
		idleTTL:      2 * policy.Window,
		cleanupEvery: policy.Window,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (Decision, error) {
	lim := s.limiter(key)
	now := time.Now()

	dec := Decision{Limit: s.policy.Limit}
	dec.Allowed = lim.Allow()

	if remaining := int(lim.Tokens()); remaining > 0 {
		dec.Remaining = remaining
	}

	if dec.Allowed {
		dec.Reset = now.Add(s.policy.Window)
		return dec, nil
	}

	// Reserve tells us when the next token arrives; we only want the
	// delay, not the reservation itself.
	res := lim.Reserve()
	delay := res.Delay()
	res.Cancel()
	if delay <= 0 {
		delay = time.Second
	}
	dec.RetryAfter = delay
	dec.Reset = now.Add(delay)
	return dec, nil
}

func (s *MemoryStore) limiter(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	rps := rate.Limit(float64(s.policy.Limit) / s.policy.Window.Seconds())
	lim := rate.NewLimiter(rps, s.policy.Limit)
	s.entries[key] = &memoryEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *MemoryStore) cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor drops idle keys periodically until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.cleanup()
			}
		}
	}()
}

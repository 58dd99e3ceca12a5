package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive/internal/ratelimit"
	"github.com/taskhive/taskhive/internal/transport/http/middleware"
)

type fakeStore struct {
	allow func(ctx context.Context, key string) (ratelimit.Decision, error)
}

func (s *fakeStore) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	return s.allow(ctx, key)
}

func newLimitedEngine(store ratelimit.Store) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	r := gin.New()
	r.GET("/ping", middleware.RateLimit("test", store, logger), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRateLimit_Allowed_SetsQuotaHeaders(t *testing.T) {
	reset := time.Now().Add(15 * time.Minute)
	store := &fakeStore{
		allow: func(_ context.Context, _ string) (ratelimit.Decision, error) {
			return ratelimit.Decision{Allowed: true, Limit: 100, Remaining: 99, Reset: reset}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	newLimitedEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "100" {
		t.Errorf("X-RateLimit-Limit = %q, want 100", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "99" {
		t.Errorf("X-RateLimit-Remaining = %q, want 99", got)
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset missing")
	}
}

func TestRateLimit_Exceeded_Returns429WithRetryAfter(t *testing.T) {
	store := &fakeStore{
		allow: func(_ context.Context, _ string) (ratelimit.Decision, error) {
			return ratelimit.Decision{
				Allowed:    false,
				Limit:      100,
				Remaining:  0,
				RetryAfter: 30 * time.Second,
				Reset:      time.Now().Add(30 * time.Second),
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	newLimitedEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
}

func TestRateLimit_KeyedByClientIP(t *testing.T) {
	var capturedKey string
	store := &fakeStore{
		allow: func(_ context.Context, key string) (ratelimit.Decision, error) {
			capturedKey = key
			return ratelimit.Decision{Allowed: true, Limit: 100, Remaining: 99}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	newLimitedEngine(store).ServeHTTP(w, req)

	if capturedKey != "203.0.113.9" {
		t.Errorf("key = %q, want client IP", capturedKey)
	}
}

func TestRateLimit_StoreError_FailsOpen(t *testing.T) {
	store := &fakeStore{
		allow: func(_ context.Context, _ string) (ratelimit.Decision, error) {
			return ratelimit.Decision{}, errors.New("redis: connection refused")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	newLimitedEngine(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (fail open)", w.Code)
	}
}

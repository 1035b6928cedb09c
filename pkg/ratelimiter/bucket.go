package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/widgetkit/pkg/cache"
)

// Limiter decides whether the holder of key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Result of a rate limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the consumed token was available.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed results.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, r.ResetAt.Sub(now))
}

type bucketState struct {
	tokens     int
	lastRefill time.Time
}

// Bucket is an in-memory token bucket per key. Idle keys are dropped once
// their bucket would have refilled completely.
type Bucket struct {
	config  Config
	mu      sync.Mutex
	buckets *cache.LRUCache[string, *bucketState]
	now     func() time.Time
}

type Option func(*Bucket)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Bucket) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBucket(config Config, opts ...Option) (*Bucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.MaxKeys <= 0 {
		config.MaxKeys = 10000
	}

	b := &Bucket{
		config:  config,
		buckets: cache.NewLRUCache[string, *bucketState](config.MaxKeys, config.idleTTL()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.buckets.SetSliding(true)
	b.buckets.SetClock(b.now)
	return b, nil
}

func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens. A denied call still consumes them, so clients
// that keep hammering stay limited.
func (b *Bucket) AllowN(_ context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	st, ok := b.buckets.Get(key)
	if !ok {
		st = &bucketState{tokens: b.config.Capacity, lastRefill: now}
		b.buckets.Put(key, st)
	}

	maxIntervals := int64(b.config.Capacity/b.config.RefillRate + 1)
	intervals := int(min(int64(now.Sub(st.lastRefill)/b.config.RefillInterval), maxIntervals))
	if intervals > 0 {
		st.tokens = min(st.tokens+intervals*b.config.RefillRate, b.config.Capacity)
		st.lastRefill = st.lastRefill.Add(time.Duration(intervals) * b.config.RefillInterval)
		if st.tokens == b.config.Capacity {
			st.lastRefill = now
		}
	}

	// Denied calls bottom out at -Capacity.
	st.tokens = max(st.tokens-n, -b.config.Capacity)

	return Result{
		Limit:     b.config.Capacity,
		Remaining: st.tokens,
		ResetAt:   st.lastRefill.Add(b.config.RefillInterval),
	}, nil
}

// Reset forgets key.
func (b *Bucket) Reset(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets.Remove(key)
}

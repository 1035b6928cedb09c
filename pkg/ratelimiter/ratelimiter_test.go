package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/pkg/clientip"
	"github.com/dmitrymomot/widgetkit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, c *clock) *ratelimiter.Bucket {
	t.Helper()
	b, err := ratelimiter.NewBucket(ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Minute,
	}, ratelimiter.WithClock(c.Now))
	require.NoError(t, err)
	return b
}

func TestNewBucketValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{Capacity: 0, RefillRate: 1, RefillInterval: time.Second}},
		{"zero refill rate", ratelimiter.Config{Capacity: 1, RefillRate: 0, RefillInterval: time.Second}},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratelimiter.NewBucket(tt.config)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestBucketAllow(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := newBucket(t, c)
	ctx := context.Background()

	for i := range 2 {
		res, err := b.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed(), "call %d", i)
	}

	res, err := b.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, time.Minute, res.RetryAfter(c.Now()))

	other, err := b.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")

	c.Advance(2 * time.Minute)
	res, err = b.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	b.Reset("1.2.3.4")
	res, err = b.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
}

func TestBucketInvalidTokenCount(t *testing.T) {
	t.Parallel()

	b := newBucket(t, &clock{now: time.Now()})
	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

type submitRequest struct{}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func serve(t *testing.T, l ratelimiter.Limiter, ip string) *httptest.ResponseRecorder {
	t.Helper()
	h := handler.Wrap(
		func(handler.Context, submitRequest) handler.Response { return handler.Empty() },
		handler.WithDecorators[handler.Context, submitRequest](
			ratelimiter.Decorator[handler.Context, submitRequest](l, ratelimiter.ClientIP, nil),
		),
		handler.WithErrorHandler[handler.Context, submitRequest](
			handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{}),
		),
	)
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if ip != "" {
		r = r.WithContext(clientip.SetIPToContext(r.Context(), ip))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestDecorator(t *testing.T) {
	t.Parallel()

	b := newBucket(t, &clock{now: time.Now()})

	for range 2 {
		rec := serve(t, b, "10.0.0.1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := serve(t, b, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "tooManyRequests")

	rec = serve(t, b, "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "unknown client is not limited")
}

func TestDecoratorFailsOpen(t *testing.T) {
	t.Parallel()

	rec := serve(t, failingLimiter{}, "10.0.0.2")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

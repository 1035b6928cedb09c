package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/session"
)

type counter struct {
	id string
	n  int
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newCounter(id string) *counter { return &counter{id: id} }

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	s := session.New(newCounter, session.WithCleanupInterval[*counter](0))
	defer s.Close()

	id, c, err := s.Create()
	require.NoError(t, err)
	assert.True(t, session.ValidID(id))
	assert.Equal(t, id, c.id)

	c.n++
	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, 1, got.n)
}

func TestStoreGetErrors(t *testing.T) {
	t.Parallel()

	s := session.New(newCounter, session.WithCleanupInterval[*counter](0))
	defer s.Close()

	_, err := s.Get("not-a-uuid")
	assert.ErrorIs(t, err, session.ErrInvalidID)

	_, err = s.Get("4f5c1c4e-8b7a-4f0e-9a51-1b2f5b1e2d3c")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestStoreEnsure(t *testing.T) {
	t.Parallel()

	s := session.New(newCounter, session.WithCleanupInterval[*counter](0))
	defer s.Close()

	id, first, err := s.Ensure("")
	require.NoError(t, err)

	again, same, err := s.Ensure(id)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Same(t, first, same)

	other, _, err := s.Ensure("4f5c1c4e-8b7a-4f0e-9a51-1b2f5b1e2d3c")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, s.Len())
}

func TestStoreIdleTimeoutSlides(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	var released []string
	s := session.New(newCounter,
		session.WithIdleTimeout[*counter](time.Minute),
		session.WithCleanupInterval[*counter](0),
		session.WithClock[*counter](clock.Now),
		session.WithOnRelease(func(id string, _ *counter) { released = append(released, id) }),
	)
	defer s.Close()

	id, _, err := s.Create()
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	_, err = s.Get(id)
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	_, err = s.Get(id)
	require.NoError(t, err, "access extends the idle timeout")

	clock.Advance(time.Minute)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Equal(t, []string{id}, released)
}

func TestStoreCapacityReleasesOldest(t *testing.T) {
	t.Parallel()

	var released []string
	s := session.New(newCounter,
		session.WithCapacity[*counter](2),
		session.WithCleanupInterval[*counter](0),
		session.WithOnRelease(func(id string, _ *counter) { released = append(released, id) }),
	)
	defer s.Close()

	a, _, _ := s.Create()
	b, _, _ := s.Create()
	_, err := s.Get(a)
	require.NoError(t, err)
	_, _, _ = s.Create()

	assert.Equal(t, []string{b}, released)
	_, err = s.Get(a)
	assert.NoError(t, err)
}

func TestStoreDeleteAndClose(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	released := map[string]bool{}
	s := session.New(newCounter,
		session.WithCleanupInterval[*counter](time.Hour),
		session.WithOnRelease(func(id string, _ *counter) {
			mu.Lock()
			released[id] = true
			mu.Unlock()
		}),
	)

	a, _, _ := s.Create()
	b, _, _ := s.Create()
	s.Delete(a)

	_, err := s.Get(a)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, released[a])
	assert.True(t, released[b])
	assert.Equal(t, 0, s.Len())

	_, _, err = s.Create()
	assert.ErrorIs(t, err, session.ErrStoreClosed)
}

func TestStoreCleanupLoop(t *testing.T) {
	t.Parallel()

	released := make(chan string, 1)
	s := session.New(newCounter,
		session.WithIdleTimeout[*counter](10*time.Millisecond),
		session.WithCleanupInterval[*counter](5*time.Millisecond),
		session.WithOnRelease(func(id string, _ *counter) { released <- id }),
	)
	defer s.Close()

	id, _, err := s.Create()
	require.NoError(t, err)

	select {
	case got := <-released:
		assert.Equal(t, id, got)
	case <-time.After(time.Second):
		t.Fatal("expired session was not released")
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	cfg.CleanupInterval = 0
	s := session.NewFromConfig(cfg, newCounter)
	defer s.Close()

	id, _, err := s.Create()
	require.NoError(t, err)
	assert.True(t, session.ValidID(id))
}

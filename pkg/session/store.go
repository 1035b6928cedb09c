package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/widgetkit/pkg/cache"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

// Store keeps per-visitor widget state, such as a form instance or a location
// lookup, under a random id that the widget sends back with every request.
// Sessions expire after an idle timeout. It is safe for concurrent use.
type Store[T any] struct {
	factory   func(id string) T
	items     *cache.LRUCache[string, T]
	capacity  int
	idle      time.Duration
	cleanup   time.Duration
	onRelease func(id string, v T)
	now       func() time.Time
	logger    *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a store that builds a fresh value with factory for every new session.
func New[T any](factory func(id string) T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		factory:  factory,
		capacity: DefaultConfig().Capacity,
		idle:     DefaultConfig().IdleTimeout,
		cleanup:  DefaultConfig().CleanupInterval,
		logger:   logger.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.items = cache.NewLRUCache[string, T](s.capacity, s.idle)
	s.items.SetSliding(true)
	if s.now != nil {
		s.items.SetClock(s.now)
	}
	s.items.SetEvictCallback(func(id string, v T) {
		s.logger.Debug("session released", logger.Session(id))
		if s.onRelease != nil {
			s.onRelease(id, v)
		}
	})

	if s.cleanup > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s
}

// Create starts a new session.
func (s *Store[T]) Create() (string, T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.closed {
		return "", zero, ErrStoreClosed
	}

	id := uuid.NewString()
	v := s.factory(id)
	s.items.Put(id, v)
	s.logger.Debug("session created", logger.Session(id))
	return id, v, nil
}

// Get returns the live session id and extends its idle timeout.
func (s *Store[T]) Get(id string) (T, error) {
	var zero T
	if !ValidID(id) {
		return zero, ErrInvalidID
	}
	v, ok := s.items.Get(id)
	if !ok {
		return zero, ErrSessionNotFound
	}
	return v, nil
}

// Ensure returns the session id when it is still live and starts a new one
// otherwise. The returned id is the one the widget must use from now on.
func (s *Store[T]) Ensure(id string) (string, T, error) {
	if v, err := s.Get(id); err == nil {
		return id, v, nil
	}
	return s.Create()
}

// Delete ends a session.
func (s *Store[T]) Delete(id string) {
	s.items.Remove(id)
}

// Len counts stored sessions, including expired ones not yet cleaned up.
func (s *Store[T]) Len() int {
	return s.items.Len()
}

// Close stops the cleanup loop and releases every session.
func (s *Store[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	s.items.Clear()
	return nil
}

func (s *Store[T]) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.items.PruneExpired(); n > 0 {
				s.logger.Debug("expired sessions released", slog.Int("count", n))
			}
		case <-s.done:
			return
		}
	}
}

// ValidID reports whether id has the shape of a session id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

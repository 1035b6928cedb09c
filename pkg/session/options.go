package session

import (
	"log/slog"
	"time"
)

type Option[T any] func(*Store[T])

func WithCapacity[T any](n int) Option[T] {
	return func(s *Store[T]) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithIdleTimeout[T any](d time.Duration) Option[T] {
	return func(s *Store[T]) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithCleanupInterval sets how often expired sessions are released. Zero
// leaves expired sessions in place until they are looked up or evicted.
func WithCleanupInterval[T any](d time.Duration) Option[T] {
	return func(s *Store[T]) {
		if d >= 0 {
			s.cleanup = d
		}
	}
}

// WithOnRelease registers fn for every session leaving the store, whether
// deleted, expired, evicted for capacity or dropped by Close. It must not
// call back into the store.
func WithOnRelease[T any](fn func(id string, v T)) Option[T] {
	return func(s *Store[T]) {
		s.onRelease = fn
	}
}

func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Store[T]) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source used for expiry.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Store[T]) {
		s.now = now
	}
}

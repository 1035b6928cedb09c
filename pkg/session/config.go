package session

import "time"

// Config holds widget session settings.
type Config struct {
	// Capacity caps live sessions; the least recently used one is dropped first.
	Capacity int `env:"SESSION_CAPACITY" envDefault:"10000"`

	// IdleTimeout expires a session that has not been used for this long.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// CleanupInterval for expired sessions (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
}

func DefaultConfig() Config {
	return Config{
		Capacity:        10000,
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// NewFromConfig creates a Store from cfg. Options given after cfg win.
func NewFromConfig[T any](cfg Config, factory func(id string) T, opts ...Option[T]) *Store[T] {
	base := []Option[T]{
		WithCapacity[T](cfg.Capacity),
		WithIdleTimeout[T](cfg.IdleTimeout),
		WithCleanupInterval[T](cfg.CleanupInterval),
	}
	return New(factory, append(base, opts...)...)
}

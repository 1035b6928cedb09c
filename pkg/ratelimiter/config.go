package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines the token bucket of one key, e.g. one client IP.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"SUBMIT_LIMIT_CAPACITY" envDefault:"5"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"SUBMIT_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"SUBMIT_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
	// MaxKeys caps tracked keys; the least recently seen one is dropped first.
	MaxKeys int `env:"SUBMIT_LIMIT_MAX_KEYS" envDefault:"10000"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// idleTTL is how long an untouched bucket is kept. After that it would be
// full again anyway.
func (c Config) idleTTL() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}

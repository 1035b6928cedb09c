package location

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/widgetkit/pkg/backend"
	"github.com/dmitrymomot/widgetkit/pkg/cache"
	"github.com/dmitrymomot/widgetkit/pkg/debounce"
)

// Option configures a Lookup.
type Option func(*Lookup)

// WithDelay sets the quiet window between the last keystroke and the query.
func WithDelay(d time.Duration) Option {
	return func(l *Lookup) {
		l.debounceOpts = append(l.debounceOpts, debounce.WithDelay(d))
	}
}

// WithAfterFunc replaces the timer source of the debouncer.
func WithAfterFunc(fn debounce.AfterFunc) Option {
	return func(l *Lookup) {
		l.debounceOpts = append(l.debounceOpts, debounce.WithAfterFunc(fn))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithCache shares search results between lookups. Keys are lower-cased,
// trimmed keywords; failed searches are not cached.
func WithCache(c *cache.LRUCache[string, []backend.Location]) Option {
	return func(l *Lookup) {
		l.cache = c
	}
}

// WithContext sets the parent context of every search. Close cancels it.
func WithContext(ctx context.Context) Option {
	return func(l *Lookup) {
		if ctx != nil {
			l.parent = ctx
		}
	}
}

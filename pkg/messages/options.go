package messages

import (
	"io"
	"log/slog"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language used when negotiation finds no match.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether an unknown key renders as the key itself. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(c *Catalog) {
		c.fallbackToKey = fallback
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs lookups of unknown keys at warn level.
func WithMissingTranslationsLogging(log bool) Option {
	return func(c *Catalog) {
		c.missingLogMode = log
	}
}

func WithNoLogging() Option {
	return func(c *Catalog) {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		c.missingLogMode = false
	}
}

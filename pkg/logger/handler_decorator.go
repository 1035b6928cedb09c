package logger

import (
	"context"
	"log/slog"
	"maps"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator wraps a slog.Handler and enriches each record with the
// attributes returned by its extractors and the ones stored in the context
// with ContextWithAttrs.
//
// A key that is already on the record, or bound to the logger with With, is
// not added again. Widgets tag their loggers explicitly so they can log outside
// a request; inside one the request context carries the same keys.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	// bound holds top-level keys added with WithAttrs in the current group.
	bound map[string]struct{}
}

// NewLogHandlerDecorator wraps next. Nil extractors are skipped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	scoped := AttrsFromContext(ctx)
	if len(h.extractors) == 0 && len(scoped) == 0 {
		return h.next.Handle(ctx, rec)
	}

	seen := make(map[string]struct{}, rec.NumAttrs()+len(h.bound))
	maps.Copy(seen, h.bound)
	rec.Attrs(func(a slog.Attr) bool {
		seen[a.Key] = struct{}{}
		return true
	})

	add := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		if _, dup := seen[a.Key]; dup {
			return
		}
		seen[a.Key] = struct{}{}
		rec.AddAttrs(a)
	}
	for _, ex := range h.extractors {
		if a, ok := ex(ctx); ok {
			add(a)
		}
	}
	for _, a := range scoped {
		add(a)
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make(map[string]struct{}, len(h.bound)+len(attrs))
	maps.Copy(bound, h.bound)
	for _, a := range attrs {
		bound[a.Key] = struct{}{}
	}
	return &LogHandlerDecorator{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
		bound:      bound,
	}
}

// WithGroup starts a new namespace, so keys bound before it no longer clash.
func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}

package logger

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
)

type attrsKey struct{}

// ContextWithAttrs returns a context whose records carry attrs in addition to
// the ones already stored in ctx. Records are enriched by LogHandlerDecorator.
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	prev := AttrsFromContext(ctx)
	return context.WithValue(ctx, attrsKey{}, append(slices.Clip(prev), attrs...))
}

// AttrsFromContext returns the attributes stored with ContextWithAttrs.
func AttrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	return attrs
}

// Middleware tags every request context with attrs, e.g. the widget a
// sub-router serves.
func Middleware(attrs ...slog.Attr) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ContextWithAttrs(r.Context(), attrs...)))
		})
	}
}

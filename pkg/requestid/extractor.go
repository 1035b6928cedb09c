package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

// LoggerExtractor tags records logged with a request context with its id.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

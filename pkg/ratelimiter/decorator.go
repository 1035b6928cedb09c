package ratelimiter

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/widgetkit/handler"
	"github.com/dmitrymomot/widgetkit/pkg/clientip"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

// KeyFunc names the caller a request is counted against. An empty key is
// not limited.
type KeyFunc func(ctx context.Context) string

// ClientIP keys requests by the address clientip.Middleware stored.
func ClientIP(ctx context.Context) string {
	return clientip.GetIPFromContext(ctx)
}

// Decorator limits a widget handler. Denied requests get the translated
// tooManyRequests error with Retry-After set. Limiter failures let the
// request through.
func Decorator[C handler.Context, R any](l Limiter, key KeyFunc, log *slog.Logger) handler.Decorator[C, R] {
	if log == nil {
		log = logger.Discard()
	}
	return func(next handler.HandlerFunc[C, R]) handler.HandlerFunc[C, R] {
		return func(ctx C, req R) handler.Response {
			k := key(ctx)
			if k == "" {
				return next(ctx, req)
			}

			res, err := l.Allow(ctx, k)
			if err != nil {
				log.WarnContext(ctx, "rate limiter failed, allowing request",
					logger.Component("ratelimiter"), logger.Error(err))
				return next(ctx, req)
			}

			h := ctx.ResponseWriter().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := int(res.RetryAfter(time.Now()).Round(time.Second) / time.Second)
				h.Set("Retry-After", strconv.Itoa(max(1, retry)))
				log.InfoContext(ctx, "submission rate limited", logger.Component("ratelimiter"))
				return handler.Error(handler.ErrTooManyRequests.Wrap(ErrLimited))
			}
			return next(ctx, req)
		}
	}
}

// Package ratelimiter throttles widget submissions with a token bucket per
// key, usually the client IP.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	r.Post("/", handler.Wrap(submit,
//		handler.WithDecorators[handler.Context, SubmitRequest](
//			ratelimiter.Decorator[handler.Context, SubmitRequest](limiter, ratelimiter.ClientIP, log),
//		),
//	))
//
// Buckets live in memory; idle keys are dropped once they would be full again.
package ratelimiter

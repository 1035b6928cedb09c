package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")

	// ErrLimited is wrapped in handler.ErrTooManyRequests when a key ran out
	// of tokens.
	ErrLimited = errors.New("ratelimiter: too many submissions")
)

package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session: not found")
	ErrInvalidID       = errors.New("session: invalid id")
	ErrStoreClosed     = errors.New("session: store is closed")
)

package botcheck

import "errors"

var (
	ErrMissingToken   = errors.New("botcheck: token is missing")
	ErrRejected       = errors.New("botcheck: token rejected")
	ErrLowScore       = errors.New("botcheck: score below threshold")
	ErrActionMismatch = errors.New("botcheck: unexpected action")
	ErrUnavailable    = errors.New("botcheck: verification service unavailable")
	ErrNotConfigured  = errors.New("botcheck: site key and secret are required")
)

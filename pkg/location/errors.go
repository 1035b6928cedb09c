package location

import "errors"

var (
	ErrUnknownCandidate = errors.New("location: candidate is not in the current result list")
	ErrClosed           = errors.New("location: lookup is closed")
)

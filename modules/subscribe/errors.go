package subscribe

import "errors"

var (
	ErrSubmitInProgress = errors.New("subscribe: submit already in progress")
	ErrInvalid          = errors.New("subscribe: form is invalid")
	ErrSubmitFailed     = errors.New("subscribe: subscription failed")
	ErrClosed           = errors.New("subscribe: modal is closed")
)

package binder

import "errors"

var (
	// ErrNotApplicable is returned when a binder does not handle the request's
	// content. handler.Wrap skips such binders and tries the next one.
	ErrNotApplicable = errors.New("binder: not applicable to this request")

	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
	ErrFailedToParseForm    = errors.New("binder: failed to parse form data")
	ErrFailedToParseQuery   = errors.New("binder: failed to parse query parameters")
	ErrFailedToParseSignals = errors.New("binder: failed to parse datastar signals")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
)

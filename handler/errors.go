package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler: nil response")
	ErrSSENotInitialized = errors.New("handler: SSE not initialized for this request")
)

// HTTPError carries a status code and a message key from the widget message
// table. The error handler translates the key for the user.
type HTTPError struct {
	Code int
	Key  string
	Err  error
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Key + ": " + e.Err.Error()
	}
	return e.Key
}

func (e HTTPError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying err as its cause.
func (e HTTPError) Wrap(err error) HTTPError {
	e.Err = err
	return e
}

// Is matches HTTPError values by status code and key, ignoring the cause.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Code == e.Code && t.Key == e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "badRequest"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "notFound"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "submitInProgress"}
	ErrUnprocessable       = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "tooManyRequests"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "unexpectedError"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "unexpectedError"}
)

package graphql

import (
	"context"
	"errors"
)

var (
	ErrInvalidEndpoint  = errors.New("graphql: invalid endpoint")
	ErrInvalidDocument  = errors.New("graphql: invalid operation document")
	ErrInvalidSchema    = errors.New("graphql: invalid schema")
	ErrTransport        = errors.New("graphql: transport failure")
	ErrTimeout          = errors.New("graphql: request timeout")
	ErrHTTPStatus       = errors.New("graphql: unexpected http status")
	ErrResponse         = errors.New("graphql: response contains errors")
	ErrDecode           = errors.New("graphql: failed to decode response")
	ErrCircuitOpen      = errors.New("graphql: circuit breaker is open")
	ErrRejected         = errors.New("graphql: operation rejected")
	ErrEmptyData        = errors.New("graphql: response has no data")
	ErrRetriesExhausted = errors.New("graphql: retries exhausted")
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindTransport
	KindTimeout
	KindHTTPStatus
	KindGraphQL
	KindDecode
	KindCircuitOpen
	KindRejected
	KindCancelled
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindGraphQL:
		return "graphql"
	case KindDecode:
		return "decode"
	case KindCircuitOpen:
		return "circuit_open"
	case KindRejected:
		return "rejected"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// KindOf maps err to its ErrorKind. The order matters: timeouts wrap transport errors.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrCircuitOpen):
		return KindCircuitOpen
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, ErrResponse):
		return KindGraphQL
	case errors.Is(err, ErrDecode), errors.Is(err, ErrEmptyData):
		return KindDecode
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}

package handler

import (
	"net/http"
)

// SSEHandler runs for the lifetime of a server-sent event stream. It should
// return when the stream's context is done.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrBadRequest.Wrap(ErrSSENotInitialized)
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the connection open and lets handler push fragments and signals,
// e.g. location candidates as they arrive.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}

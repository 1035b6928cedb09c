// Package handler turns typed widget handlers into net/http handlers.
//
// A HandlerFunc receives a Context and a request struct filled by the binders
// from pkg/binder, and returns a Response. Responses know how to answer both
// plain browser requests and Datastar requests, which expect server-sent
// events: Templ patches a fragment, Redirect navigates, Signals updates the
// client signal store and SSE keeps a stream open for pushed updates.
//
//	submit := func(ctx handler.Context, req contactRequest) handler.Response {
//		return handler.Templ(views.Confirmation(id))
//	}
//	r.Post("/contact", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, contactRequest](binder.Form(), binder.Signals()),
//		handler.WithErrorHandler[handler.Context, contactRequest](errHandler),
//	))
//
// Errors returned from binding or rendering go to the ErrorHandler.
// NewErrorHandler translates HTTPError keys with the message catalog and
// renders them with a configurable fragment.
package handler

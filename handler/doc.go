// Package handler adapts typed handlers to net/http and renders their
// responses as HTML or as Datastar server-sent events.
//
// A handler receives a Context and a request value decoded by binders:
//
//	type VisibleRequest struct {
//		ID    string  `query:"id"`
//		Ratio float64 `query:"ratio"`
//	}
//
//	r.Post("/sections/visible", handler.Wrap(
//		func(ctx handler.Context, req VisibleRequest) handler.Response {
//			return handler.Templ(views.Header(params))
//		},
//		handler.WithBinders[handler.Context, VisibleRequest](binder.Query()),
//	))
//
// Requests carrying the Datastar-Request header get their responses as SSE
// patches; every other request gets plain HTML. Within one request the
// handler and its response share a single SSE generator, so a handler may
// push early patches through ctx.SSE() and still return a Response.
//
// NewErrorHandler turns binding and rendering errors into a full error page
// or, for Datastar requests, a toast appended to #toast-container. HTTPError
// carries the status and a message catalog key.
package handler

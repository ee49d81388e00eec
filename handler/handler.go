package handler

import (
	"errors"
	"net/http"

	"github.com/velveproduce/site/pkg/binder"
)

// HandlerFunc handles a request already decoded into R.
//
//	h := handler.HandlerFunc[handler.Context, NavigateRequest](
//		func(ctx handler.Context, req NavigateRequest) handler.Response {
//			return handler.Templ(views.Page(params))
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes part of a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler reports binding and rendering errors to the client.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. The first decorator passed to Wrap is the
// outermost one.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders        []Bind
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C, R]
}

// WithBinders runs binders in order. Binders returning
// binder.ErrBinderNotApplicable are skipped.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

func defaultErrorHandler[C Context](ctx C, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Key, httpErr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Wrap turns a typed handler into an http.HandlerFunc.
//
//	r.Post("/navigate", handler.Wrap(h,
//		handler.WithBinders[handler.Context, NavigateRequest](binder.Query()),
//		handler.WithErrorHandler[handler.Context, NavigateRequest](errorHandler),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{
		errorHandler: defaultErrorHandler[C],
		contextFactory: func(w http.ResponseWriter, r *http.Request) C {
			if c, ok := NewContext(w, r).(C); ok {
				return c
			}
			panic("handler: custom context type requires WithContextFactory")
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r = withStream(r)
		ctx := cfg.contextFactory(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				if errors.Is(err, binder.ErrBinderNotApplicable) {
					continue
				}
				cfg.errorHandler(ctx, NewHTTPError(http.StatusBadRequest, "error.bad_request", err))
				return
			}
		}

		resp := final(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

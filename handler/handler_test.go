package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/handler"
	"github.com/velveproduce/site/pkg/binder"
	"github.com/velveproduce/site/pkg/logger"
)

type visibleRequest struct {
	ID    string  `query:"id"`
	Ratio float64 `query:"ratio"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Datastar-Request", "true")
	return r
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header map[string]string
		target string
		want   bool
	}{
		{name: "datastar header", header: map[string]string{"Datastar-Request": "true"}, target: "/", want: true},
		{name: "event stream accept", header: map[string]string{"Accept": "text/html, text/event-stream"}, target: "/", want: true},
		{name: "signals query", target: "/?datastar=%7B%7D", want: true},
		{name: "plain", header: map[string]string{"Accept": "text/html"}, target: "/", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req visibleRequest) handler.Response {
			return handler.Templ(text(req.ID))
		}, handler.WithBinders[handler.Context, visibleRequest](binder.Form(), binder.Query()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/sections/visible?id=services&ratio=0.6", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "services", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("bind error is a bad request", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(ctx handler.Context, req visibleRequest) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
			handler.WithBinders[handler.Context, visibleRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, visibleRequest](func(ctx handler.Context, err error) { got = err }),
		)

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/?ratio=x", nil))
		var httpErr handler.HTTPError
		require.ErrorAs(t, got, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.ErrorIs(t, got, binder.ErrInvalidQuery)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}, handler.WithDecorators(mark("outer"), mark("inner")))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("partial for datastar", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text(`<div id="app">partial</div>`), text("full"))
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/locale")))

		body := rec.Body.String()
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		assert.Contains(t, body, "event: datastar-patch-elements")
		assert.Contains(t, body, "partial")
		assert.NotContains(t, body, "full")
	})

	t.Run("full for plain requests", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text("partial"), text("full"))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "full", rec.Body.String())
	})

	t.Run("multi", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(text("page"),
			handler.Patch(text(`<main id="page">a</main>`)),
			handler.Patch(text(`<nav id="nav">b</nav>`), handler.WithTarget("#nav")),
		)
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/navigate")))
		assert.Equal(t, 2, strings.Count(rec.Body.String(), "event: datastar-patch-elements"))
		assert.Contains(t, rec.Body.String(), "data: selector #nav")
	})
}

func TestSharedStream(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
		require.NotNil(t, ctx.SSE())
		require.NoError(t, ctx.SSE().PatchElementTempl(text(`<form id="contact-form">sending</form>`)))
		return handler.Templ(text(`<form id="contact-form">done</form>`))
	})

	rec := httptest.NewRecorder()
	h(rec, datastarRequest(http.MethodPost, "/contact"))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: datastar-patch-elements"))
	assert.Less(t, strings.Index(body, "sending"), strings.Index(body, "done"))
}

func TestPlainContextHasNoStream(t *testing.T) {
	t.Parallel()

	ctx := handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, ctx.SSE())
}

func TestSSEResponse(t *testing.T) {
	t.Parallel()

	resp := handler.SSE(func(s handler.StreamContext) error {
		if err := s.SendComponent(text(`<main id="page">history</main>`)); err != nil {
			return err
		}
		if err := s.SendSignals(map[string]any{"page": "history"}); err != nil {
			return err
		}
		return s.ExecuteScript("window.scrollTo(0,0)")
	}, handler.Templ(text("fallback")))

	rec := httptest.NewRecorder()
	require.NoError(t, resp.Render(rec, datastarRequest(http.MethodPost, "/navigate")))
	body := rec.Body.String()
	assert.Contains(t, body, "history")
	assert.Contains(t, body, "event: datastar-patch-signals")
	assert.Contains(t, body, "window.scrollTo(0,0)")

	rec = httptest.NewRecorder()
	require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodPost, "/navigate", nil)))
	assert.Equal(t, "fallback", rec.Body.String())

	err := handler.SSE(func(handler.StreamContext) error { return nil }, nil).
		Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	var httpErr handler.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/?page=contact").Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?page=contact", rec.Header().Get("Location"))

	r := httptest.NewRequest(http.MethodPost, "/locale", nil)
	r.Header.Set("Referer", "https://evil.example/phish")
	rec = httptest.NewRecorder()
	require.NoError(t, handler.RedirectBack("/").Render(rec, r))
	assert.Equal(t, "/", rec.Header().Get("Location"))

	r = httptest.NewRequest(http.MethodPost, "/locale", nil)
	r.Header.Set("Referer", "http://example.com/?page=history")
	rec = httptest.NewRecorder()
	require.NoError(t, handler.RedirectBack("/").Render(rec, r))
	assert.Equal(t, "http://example.com/?page=history", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/").Render(rec, datastarRequest(http.MethodPost, "/")))
	assert.Contains(t, rec.Body.String(), "window.location")
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	cfg := handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			return text("page:" + p.Message)
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return text(`<div class="toast ` + p.Type + `">` + p.Message + `</div>`)
		},
		Translate: func(_ context.Context, key string) string {
			return map[string]string{"error.not_found": "Página no encontrada"}[key]
		},
	}
	eh := handler.NewErrorHandler(logger.Discard(), cfg)

	t.Run("page", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/x", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "page:Página no encontrada", rec.Body.String())
	})

	t.Run("toast", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, datastarRequest(http.MethodPost, "/navigate")), handler.ErrNotFound)
		body := rec.Body.String()
		assert.Contains(t, body, "data: selector #toast-container")
		assert.Contains(t, body, "data: mode append")
		assert.Contains(t, body, "toast warning")
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{})(
			handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), io.ErrUnexpectedEOF)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "error.internal")
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		verr := handler.ValidationError{}
		verr.Add("user_email", "invalid")
		rec := httptest.NewRecorder()
		handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{})(
			handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/", nil)), verr)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "invalid", verr.Get("user_email"))
	})
}

func TestFail(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, struct{}) handler.Response { return handler.Fail(handler.ErrTooManyRequests) },
		handler.WithErrorHandler[handler.Context, struct{}](func(_ handler.Context, err error) { got = err }),
	)
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/contact", nil))

	require.ErrorIs(t, got, handler.ErrTooManyRequests)
}

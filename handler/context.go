package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// Context carries the request, the response writer and, for Datastar
// requests, the SSE generator.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE returns the request's event stream, opening it on first use. It is
	// nil for non-Datastar requests.
	SSE() *datastar.ServerSentEventGenerator
}

// NewContext builds the default Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: withStream(r)}
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if !IsDataStar(c.r) {
		return nil
	}
	return stream(c.w, c.r)
}

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is a Context with an open SSE stream.
type StreamContext interface {
	Context
	SendComponent(c templ.Component, opts ...TemplOption) error
	SendMultiple(patches ...TemplPatch) error
	SendSignals(signals map[string]any) error
	ExecuteScript(script string) error
}

// SSEHandler drives a stream until it returns.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler  SSEHandler
	fallback Response
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		if s.fallback != nil {
			return s.fallback.Render(w, r)
		}
		return NewHTTPError(http.StatusBadRequest, "error.bad_request")
	}
	base := NewContext(w, r)
	return s.handler(&streamContext{Context: base, sse: base.SSE()})
}

// SSE runs h on the Datastar stream. Plain requests get fallback, or 400
// when fallback is nil.
//
//	return handler.SSE(func(s handler.StreamContext) error {
//		if err := s.SendComponent(views.Body(p)); err != nil {
//			return err
//		}
//		return transition.Await(s, scroller)
//	}, handler.Templ(views.Page(p)))
func SSE(h SSEHandler, fallback Response) Response {
	return sseResponse{handler: h, fallback: fallback}
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(comp templ.Component, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(comp, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	for _, p := range patches {
		if err := c.SendComponent(p.Component, p.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

func (c *streamContext) ExecuteScript(script string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.ExecuteScript(script)
}

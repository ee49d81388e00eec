package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is sent by the Datastar client on every action.
	DataStarRequestHeader = "Datastar-Request"
	// DataStarQueryParam carries signals on GET actions.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was sent by the Datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// streamHolder lets the handler and its response share one SSE generator.
// datastar.NewSSE writes the response headers, so it must run once.
type streamHolder struct {
	once sync.Once
	sse  *datastar.ServerSentEventGenerator
}

type streamKey struct{}

func withStream(r *http.Request) *http.Request {
	if _, ok := r.Context().Value(streamKey{}).(*streamHolder); ok {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), streamKey{}, &streamHolder{}))
}

// stream returns the request's generator, creating it on first call.
// Requests that did not pass through Wrap or NewContext get a fresh one.
func stream(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	h, ok := r.Context().Value(streamKey{}).(*streamHolder)
	if !ok {
		return datastar.NewSSE(w, r)
	}
	h.once.Do(func() { h.sse = datastar.NewSSE(w, r) })
	return h.sse
}

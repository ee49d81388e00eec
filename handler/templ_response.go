package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures a Datastar element patch.
type TemplOption = datastar.PatchElementOption

// WithTarget patches the element matching selector instead of the one with
// the component's root id.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component with its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(c templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: c, Options: opts}
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	options []TemplOption
	status  int
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return stream(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c as HTML, or patches it over SSE for Datastar requests.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: c, full: c, options: opts}
}

// TemplWithStatus is Templ with a status code for plain requests.
func TemplWithStatus(status int, c templ.Component) Response {
	return templResponse{partial: c, full: c, status: status}
}

// TemplPartial patches partial for Datastar requests and renders full
// otherwise, so the same URL works with and without JavaScript.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

type templMultiResponse struct {
	patches []TemplPatch
	full    templ.Component
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := stream(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// TemplMulti sends several patches to Datastar and renders full otherwise.
func TemplMulti(full templ.Component, patches ...TemplPatch) Response {
	return templMultiResponse{patches: patches, full: full}
}

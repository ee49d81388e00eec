package handler

import (
	"net/http"
	"net/url"
)

type redirectResponse struct {
	url  string
	back bool
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	target := rr.url
	if rr.back {
		if ref := r.Header.Get("Referer"); ref != "" && sameHost(ref, r) {
			target = ref
		}
	}
	if IsDataStar(r) {
		return stream(w, r).Redirect(target)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return nil
}

// Redirect answers 303 See Other, or a client side redirect over SSE.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}

// RedirectBack redirects to the same-host Referer, or to fallback.
func RedirectBack(fallback string) Response {
	return redirectResponse{url: fallback, back: true}
}

func sameHost(raw string, r *http.Request) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host == "" || u.Host == r.Host
}

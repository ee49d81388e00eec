package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are checked in order before falling back to RemoteAddr.
// X-Forwarded-For contributes its first valid address.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address from a request.
type Resolver struct {
	headers []string
}

// NewResolver trusts the given proxy headers in order. With no headers only
// RemoteAddr is used, which is the right choice when nothing sits in front.
func NewResolver(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// IP returns the normalized client address, or "" when nothing parses.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		if strings.EqualFold(h, "X-Forwarded-For") {
			for part := range strings.SplitSeq(v, ",") {
				if ip := parse(part); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := parse(v); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}

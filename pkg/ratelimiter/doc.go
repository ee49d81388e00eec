// Package ratelimiter implements a token bucket with a pluggable store and
// an HTTP middleware. The site uses it to throttle contact form posts per
// client address.
package ratelimiter

// Package clientip resolves the visitor address behind trusted proxies.
// The contact form rate limiter keys on it.
package clientip

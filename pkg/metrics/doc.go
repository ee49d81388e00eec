// Package metrics exports Prometheus metrics for the site: HTTP traffic by
// chi route pattern, contact form transitions, navigations, locale switches
// and rate limiter rejections.
package metrics

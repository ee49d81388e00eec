// Package httpserver runs the site handler with timeouts from the
// environment and shuts it down gracefully on context cancellation or
// SIGINT/SIGTERM. Liveness and Readiness provide the probe handlers.
package httpserver

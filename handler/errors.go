package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError is an error with a status code and a message catalog key.
type HTTPError struct {
	Code  int
	Key   string
	cause error
}

// NewHTTPError builds an HTTPError. The optional cause is kept for logging
// and errors.Is/As.
func NewHTTPError(code int, key string, cause ...error) HTTPError {
	e := HTTPError{Code: code, Key: key}
	if len(cause) > 0 {
		e.cause = cause[0]
	}
	return e
}

func (e HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Key, e.cause)
	}
	return e.Key
}

func (e HTTPError) Unwrap() error { return e.cause }

var (
	ErrBadRequest      = HTTPError{Code: http.StatusBadRequest, Key: "error.bad_request"}
	ErrNotFound        = HTTPError{Code: http.StatusNotFound, Key: "error.not_found"}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Key: "error.too_many_requests"}
	ErrInternal        = HTTPError{Code: http.StatusInternalServerError, Key: "error.internal"}
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		if len(msgs) > 0 {
			parts = append(parts, field+": "+msgs[0])
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, msg string)   { url.Values(e).Add(field, msg) }
func (e ValidationError) Get(field string) string { return url.Values(e).Get(field) }

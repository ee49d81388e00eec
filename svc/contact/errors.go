package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned by Submit while a previous submission is sending.
	ErrInFlight = errors.New("contact: submission already in flight")
	// ErrNetwork wraps transport failures of the delivery endpoint.
	ErrNetwork = errors.New("contact: network error")
	ErrClosed  = errors.New("contact: flow closed")

	ErrInvalidConfig = errors.New("contact: invalid configuration")
)

// NetworkErrorDetail is the error detail recorded for transport failures.
const NetworkErrorDetail = "Network connection error"

// DeliveryError is a non-2xx answer from the delivery endpoint. Detail holds
// the response body as text.
type DeliveryError struct {
	StatusCode int
	Detail     string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("contact: delivery rejected with status %d: %s", e.StatusCode, e.Detail)
}

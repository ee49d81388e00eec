package email

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToSend   = errors.New("email: failed to send")
	ErrInvalidConfig  = errors.New("email: invalid config")
	ErrInvalidMessage = errors.New("email: invalid message")
)

// RejectedError is a provider answer refusing the message. Errors without
// one are transport failures.
type RejectedError struct {
	Code    int64
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("email: rejected with code %d: %s", e.Code, e.Message)
}

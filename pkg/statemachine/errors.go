package statemachine

import (
	"errors"
	"fmt"
)

var ErrDuplicateTransition = errors.New("duplicate unguarded transition")

// NoTransitionError indicates no transition exists for the given state/event combination.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

// RejectedError indicates all candidate transitions were blocked by guards.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}

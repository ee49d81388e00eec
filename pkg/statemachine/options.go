package statemachine

import (
	"fmt"
)

// Option configures a state machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New creates a new state machine with the given initial state and options.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := newMachine[S, E](initial)

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNew creates a new state machine and panics if any option fails to apply.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition adds a single transition to the state machine.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		for _, existing := range m.transitions[from][event] {
			if existing.To == to && len(existing.Guards) == 0 && len(t.Guards) == 0 {
				return fmt.Errorf("%w: %v -> %v on %v", ErrDuplicateTransition, from, to, event)
			}
		}
		m.addTransition(t)
		return nil
	}
}

// WithListener registers a callback invoked after every successful transition.
func WithListener[S, E comparable](l Listener[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
		return nil
	}
}

// WithGuard adds a guard to a transition.
func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

// WithAction adds an action to a transition.
func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}

package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action executes side effects during a transition. Returning an error prevents the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Listener is notified after the current state has changed.
// Listeners run while the machine lock is held and must not call back into the machine.
type Listener[S, E comparable] func(from, to S, event E)

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // All must pass for transition to proceed
	Actions []Action[S, E] // Executed in order before state change
}

// Machine is a thread-safe in-memory finite state machine over comparable
// state and event types. Lookups use a nested map: [from][event][]Transition.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]Transition[S, E]
	listeners   []Listener[S, E]
}

func newMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
}

// Current returns the active state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in any of the given states.
func (m *Machine[S, E]) Is(states ...S) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range states {
		if m.current == s {
			return true
		}
	}
	return false
}

func (m *Machine[S, E]) addTransition(t Transition[S, E]) {
	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	// Multiple transitions allowed for same from/event to support guard-based branching
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

// Fire triggers event from the current state. The first transition whose guards
// all pass wins; its actions run before the state changes.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.lookup(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	from := m.current
	m.current = t.To
	for _, l := range m.listeners {
		l(from, t.To, event)
	}
	return nil
}

// CanFire reports whether Fire would find an allowed transition for event.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.lookup(ctx, event, data)
	return err == nil
}

// Reset moves the machine back to its initial state without notifying listeners.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// lookup must be called with the lock held.
func (m *Machine[S, E]) lookup(ctx context.Context, event E, data any) (*Transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}

	for i, t := range candidates {
		allowed := true
		for _, guard := range t.Guards {
			if !guard(ctx, m.current, event, data) {
				allowed = false
				break
			}
		}
		if allowed {
			return &candidates[i], nil
		}
	}

	return nil, &RejectedError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
}

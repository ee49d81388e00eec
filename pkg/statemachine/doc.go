// Package statemachine implements a small, generic finite-state machine.
//
// States and events are any comparable types, usually string-based enums
// declared by the caller:
//
//	type Status string
//	type Event string
//
//	const (
//	    Idle    Status = "idle"
//	    Sending Status = "sending"
//	    Submit  Event  = "submit"
//	)
//
//	m := statemachine.MustNew[Status, Event](Idle,
//	    statemachine.WithTransition[Status, Event](Idle, Sending, Submit),
//	)
//	_ = m.Fire(ctx, Submit, nil)
//
// # Guards, Actions and Listeners
//
// Guards veto a transition based on runtime data. Actions run after the guards
// pass and before the state changes; an action error aborts the transition.
// Listeners observe completed transitions and are handy for metrics.
//
// # Errors
//
// Fire returns *NoTransitionError when the current state has no transition for
// the event and *RejectedError when every candidate was vetoed by a guard. Use
// IsNoTransition and IsRejected to tell them apart.
//
// # Concurrency
//
// Machine guards its state with a RWMutex. Current, Is and CanFire take the read
// lock; Fire and Reset serialize.
package statemachine

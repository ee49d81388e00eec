package contact

import "strings"

// Status is the lifecycle state of one contact form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Event drives Status transitions.
type Event string

const (
	EventSubmit    Event = "submit"
	EventDelivered Event = "delivered"
	EventFailed    Event = "failed"
	EventReset     Event = "reset"
)

// Message keys for the error panel.
const (
	ErrorKeyTemplateNotFound = "contact.error.template_not_found"
	ErrorKeyGeneric          = "contact.error.generic"
)

// Snapshot is a consistent copy of a flow's state.
type Snapshot struct {
	Status Status
	// Detail is the delivery diagnostic while Status is StatusError.
	Detail string
	// Fields are the last submitted values, kept so an error re-render does
	// not lose the input. Cleared by Reset.
	Fields Fields
}

// ErrorKey picks the message shown on the error panel.
func (s Snapshot) ErrorKey() string {
	if strings.Contains(s.Detail, "template ID not found") {
		return ErrorKeyTemplateNotFound
	}
	return ErrorKeyGeneric
}

// Sending reports whether the form controls must be disabled.
func (s Snapshot) Sending() bool { return s.Status == StatusSending }

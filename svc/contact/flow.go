package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/pkg/statemachine"
)

const notifyTimeout = 10 * time.Second

// Sender delivers an inquiry. Non-2xx answers are reported as
// *DeliveryError, transport failures wrap ErrNetwork.
type Sender interface {
	Send(ctx context.Context, inq Inquiry) error
}

// Notifier is told about delivered inquiries. Its errors are only logged.
type Notifier interface {
	Notify(ctx context.Context, inq Inquiry) error
}

// Flow is the submission lifecycle of one contact form:
//
//	idle|error --submit--> sending --delivered--> success
//	                       sending --failed-----> error
//	success|error --reset--> idle
type Flow struct {
	mu        sync.Mutex
	machine   *statemachine.Machine[Status, Event]
	detail    string
	fields    Fields
	closed    bool
	sender    Sender
	notifier  Notifier
	listeners []func(from, to Status)
	logger    *slog.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

func WithNotifier(n Notifier) FlowOption {
	return func(f *Flow) { f.notifier = n }
}

// WithTransitionListener is called after every state change. It runs with the
// flow lock held and must not call back into the flow.
func WithTransitionListener(l func(from, to Status)) FlowOption {
	return func(f *Flow) {
		if l != nil {
			f.listeners = append(f.listeners, l)
		}
	}
}

func WithLogger(l *slog.Logger) FlowOption {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFlow returns an idle flow delivering through sender.
func NewFlow(sender Sender, opts ...FlowOption) *Flow {
	f := &Flow{
		sender: sender,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(logger.Component("contact"))

	f.machine = statemachine.MustNew(StatusIdle,
		statemachine.WithTransition[Status, Event](StatusIdle, StatusSending, EventSubmit),
		statemachine.WithTransition[Status, Event](StatusError, StatusSending, EventSubmit),
		statemachine.WithTransition[Status, Event](StatusSending, StatusSuccess, EventDelivered),
		statemachine.WithTransition[Status, Event](StatusSending, StatusError, EventFailed),
		statemachine.WithTransition[Status, Event](StatusSuccess, StatusIdle, EventReset),
		statemachine.WithTransition[Status, Event](StatusError, StatusIdle, EventReset),
		statemachine.WithListener(func(from, to Status, event Event) {
			f.logger.Debug("contact transition", logger.Transition(string(from), string(to), string(event)))
			for _, l := range f.listeners {
				l(from, to)
			}
		}),
	)
	return f
}

// Snapshot returns the current state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *Flow) snapshot() Snapshot {
	return Snapshot{Status: f.machine.Current(), Detail: f.detail, Fields: f.fields}
}

// Begin validates fields and moves the flow to sending. It returns
// validator.ValidationErrors for bad input, ErrInFlight while another
// submission is sending and ErrClosed after Close. On error the state is
// unchanged. A nil error must be followed by exactly one Deliver.
func (f *Flow) Begin(ctx context.Context, fields Fields) (Inquiry, error) {
	fields = fields.Sanitize()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return Inquiry{}, ErrClosed
	}
	if f.machine.Is(StatusSending) {
		return Inquiry{}, ErrInFlight
	}
	if err := fields.Validate(); err != nil {
		return Inquiry{}, err
	}
	if err := f.machine.Fire(ctx, EventSubmit, nil); err != nil {
		return Inquiry{}, fmt.Errorf("contact: submit: %w", err)
	}
	f.fields = fields
	f.detail = ""
	return newInquiry(fields), nil
}

// Deliver sends inq and records the outcome. The flow lock is not held
// while sending.
func (f *Flow) Deliver(ctx context.Context, inq Inquiry) error {
	sendErr := f.sender.Send(ctx, inq)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		f.logger.Debug("submission finished after close", logger.Error(sendErr))
		return sendErr
	}

	if sendErr == nil {
		if err := f.machine.Fire(ctx, EventDelivered, nil); err != nil {
			return err
		}
		f.notify(inq)
		return nil
	}

	f.detail = errorDetail(sendErr)
	f.logger.Warn("contact submission failed", logger.Error(sendErr))
	if err := f.machine.Fire(ctx, EventFailed, nil); err != nil {
		return err
	}
	return sendErr
}

// Submit is Begin followed by Deliver.
func (f *Flow) Submit(ctx context.Context, fields Fields) error {
	inq, err := f.Begin(ctx, fields)
	if err != nil {
		return err
	}
	return f.Deliver(ctx, inq)
}

// Reset returns a finished flow to idle and forgets the entered values.
func (f *Flow) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.machine.Fire(ctx, EventReset, nil); err != nil {
		return fmt.Errorf("contact: reset: %w", err)
	}
	f.fields = Fields{}
	f.detail = ""
	return nil
}

// Close tears the flow down. Outcomes of sends still in flight are dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// notify runs the notifier in the background so a slow webhook never delays
// the visitor.
func (f *Flow) notify(inq Inquiry) {
	if f.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := f.notifier.Notify(ctx, inq); err != nil {
			f.logger.Warn("contact notification failed", logger.Error(err))
		}
	}()
}

func errorDetail(err error) string {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Detail
	}
	return NetworkErrorDetail
}

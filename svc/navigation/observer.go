package navigation

import (
	"context"
	"sync"
)

// Visibility is one visibility report for a section.
type Visibility struct {
	ID    string
	Ratio float64
}

// Observer tracks section visibility and calls back on changes.
type Observer interface {
	Observe(id string, cb func(Visibility))
	Unobserve(id string)
}

// Scroller moves the viewport.
type Scroller interface {
	ScrollIntoView(ctx context.Context, id string) error
	ScrollTop(ctx context.Context) error
}

// ReportingObserver is an Observer fed explicitly, by browser reports or by
// tests.
type ReportingObserver struct {
	mu        sync.Mutex
	callbacks map[string]func(Visibility)
}

func NewReportingObserver() *ReportingObserver {
	return &ReportingObserver{callbacks: make(map[string]func(Visibility))}
}

func (o *ReportingObserver) Observe(id string, cb func(Visibility)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.callbacks[id] = cb
}

func (o *ReportingObserver) Unobserve(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.callbacks, id)
}

// Observing reports whether id has a registered callback.
func (o *ReportingObserver) Observing(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.callbacks[id]
	return ok
}

// Report delivers a visibility ratio for id. It returns false when nothing
// observes id. The callback runs without the observer lock held.
func (o *ReportingObserver) Report(id string, ratio float64) bool {
	o.mu.Lock()
	cb, ok := o.callbacks[id]
	o.mu.Unlock()
	if !ok {
		return false
	}
	cb(Visibility{ID: id, Ratio: ratio})
	return true
}

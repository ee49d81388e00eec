package navigation

import (
	"context"
	"slices"
	"sync"
)

// Transition is the scroll effect of one navigation. It becomes ready when
// the target page reports it is mounted.
type Transition struct {
	page     Page
	section  string
	sections []string

	once sync.Once
	done chan struct{}
	err  error
}

func newTransition(page Page, section string, sections []string) *Transition {
	return &Transition{
		page:     page,
		section:  section,
		sections: sections,
		done:     make(chan struct{}),
	}
}

func (t *Transition) resolve(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Page is the navigation target.
func (t *Transition) Page() Page { return t.page }

// Section is the scroll target, or "" for the top of the page.
func (t *Transition) Section() string { return t.section }

// Ready reports whether Await would return without blocking.
func (t *Transition) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Await blocks until the target page is mounted, then scrolls. It returns
// ErrSuperseded when a newer navigation replaced this one and ctx.Err() when
// ctx ends first. Sections that do not exist are silently skipped.
func (t *Transition) Await(ctx context.Context, s Scroller) error {
	select {
	case <-t.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if t.err != nil {
		return t.err
	}

	if t.section == "" {
		return s.ScrollTop(ctx)
	}
	if !slices.Contains(t.sections, t.section) {
		return nil
	}
	return s.ScrollIntoView(ctx, t.section)
}

package navigation

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/svc/content"
)

const (
	// DefaultThreshold is the visible share at which a section becomes active.
	DefaultThreshold = 0.5
	// DefaultSection is the active section of a fresh controller.
	DefaultSection = "home"
)

// Controller owns one visitor's locale, page and active section.
type Controller struct {
	mu        sync.Mutex
	state     State
	sections  []string
	observer  Observer
	threshold float64
	observing bool
	pending   *Transition
	closed    bool
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

func WithLocale(l content.Locale) Option {
	return func(c *Controller) {
		if l.Valid() {
			c.state.Locale = l
		}
	}
}

// WithObserver sets the section visibility source. Without one the active
// section never changes.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

func WithThreshold(ratio float64) Option {
	return func(c *Controller) {
		if ratio > 0 && ratio <= 1 {
			c.threshold = ratio
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a controller on the landing page in the default locale.
// sections are the landing section ids; the first one is the initial active
// section unless DefaultSection is among them.
func New(sections []string, opts ...Option) *Controller {
	c := &Controller{
		state:     State{Locale: content.Default, Page: Landing},
		sections:  slices.Clone(sections),
		threshold: DefaultThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	switch {
	case slices.Contains(c.sections, DefaultSection):
		c.state.ActiveSection = DefaultSection
	case len(c.sections) > 0:
		c.state.ActiveSection = c.sections[0]
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("navigation"))
	return c
}

// State returns a consistent snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetLocale switches the locale and reports whether it changed. Invalid
// locales are ignored.
func (c *Controller) SetLocale(l content.Locale) bool {
	if !l.Valid() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Locale == l {
		return false
	}
	c.state.Locale = l
	return true
}

// ToggleLocale switches between the two locales and returns the new one.
func (c *Controller) ToggleLocale() content.Locale {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Locale = c.state.Locale.Other()
	return c.state.Locale
}

// NavigateTo makes page current and returns the scroll effect.
//
// Staying on the same page resolves at once: landing with a section scrolls
// to it, anything else scrolls to the top. Changing page waits for Mounted;
// the scroll target is section on landing and the top elsewhere. A still
// pending transition is superseded.
func (c *Controller) NavigateTo(page Page, section string) (*Transition, error) {
	if !page.Valid() {
		return nil, ErrUnknownPage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	target := ""
	if page == Landing {
		target = section
	}
	t := newTransition(page, target, c.sections)

	// A page that has not mounted yet cannot scroll, so a repeated
	// navigation to it waits like the first one did.
	waiting := c.pending != nil
	if waiting {
		c.pending.resolve(ErrSuperseded)
		c.pending = nil
	}

	c.state.Seq++
	from := c.state.Page
	if from == page && !waiting {
		t.resolve(nil)
	} else {
		if from == Landing && page != Landing {
			c.detach()
		}
		c.state.Page = page
		c.pending = t
	}

	c.logger.Debug("navigate",
		logger.Page(string(page)),
		logger.Section(target),
		slog.String("from", string(from)),
		slog.Bool("ready", t.Ready()),
	)
	return t, nil
}

// Mounted is the notification that page finished rendering the navigation
// numbered seq. It resolves the pending transition for page and, on landing,
// starts observing sections. Notifications for a page that is not current or
// for an older seq are ignored and reported as false. A zero seq skips the
// seq check.
func (c *Controller) Mounted(page Page, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || page != c.state.Page || (seq != 0 && seq != c.state.Seq) {
		c.logger.Debug("stale mount notification", logger.Page(string(page)), slog.Uint64("seq", seq))
		return false
	}
	if page == Landing {
		c.attach()
	}
	if c.pending != nil && c.pending.page == page {
		c.pending.resolve(nil)
		c.pending = nil
	}
	return true
}

// ObserveActiveSection registers every landing section on the observer.
// It does nothing off the landing page or when already observing.
func (c *Controller) ObserveActiveSection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Page != Landing {
		return
	}
	c.attach()
}

// Observing reports whether section visibility updates are applied.
func (c *Controller) Observing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observing
}

// Close detaches the observer and supersedes any pending transition.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.detach()
	if c.pending != nil {
		c.pending.resolve(ErrClosed)
		c.pending = nil
	}
}

func (c *Controller) attach() {
	if c.observing || c.observer == nil {
		return
	}
	for _, id := range c.sections {
		c.observer.Observe(id, c.onVisibility)
	}
	c.observing = true
}

func (c *Controller) detach() {
	if !c.observing {
		return
	}
	for _, id := range c.sections {
		c.observer.Unobserve(id)
	}
	c.observing = false
}

// onVisibility applies reports in arrival order: the latest section at or
// over the threshold wins.
func (c *Controller) onVisibility(v Visibility) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.observing || c.state.Page != Landing || !slices.Contains(c.sections, v.ID) {
		return
	}
	if v.Ratio >= c.threshold {
		c.state.ActiveSection = v.ID
	}
}

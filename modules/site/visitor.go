package site

import (
	"sync"

	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/content"
	"github.com/velveproduce/site/svc/navigation"
)

// Visitor is the state kept for one browser.
type Visitor struct {
	Nav      *navigation.Controller
	Observer *navigation.ReportingObserver
	Contact  *contact.Flow

	seed sync.Once
}

// Close is called when the visitor expires.
func (v *Visitor) Close() {
	v.Nav.Close()
	v.Contact.Close()
}

// seedLocale applies the negotiated locale to a new visitor. Later requests
// keep whatever the visitor chose.
func (v *Visitor) seedLocale(code string) {
	v.seed.Do(func() {
		if l, ok := content.ParseLocale(code); ok {
			v.Nav.SetLocale(l)
		}
	})
}

func (s *Service) newVisitor(id string) *Visitor {
	log := s.logger.With(logger.VisitorID(id))
	obs := navigation.NewReportingObserver()

	flowOpts := []contact.FlowOption{
		contact.WithLogger(log),
		contact.WithTransitionListener(func(from, to contact.Status) {
			s.metrics.ContactTransition(string(from), string(to))
		}),
	}
	if s.notifier != nil {
		flowOpts = append(flowOpts, contact.WithNotifier(s.notifier))
	}

	return &Visitor{
		Nav: navigation.New(content.Sections,
			navigation.WithObserver(obs),
			navigation.WithThreshold(s.cfg.Threshold),
			navigation.WithLogger(log),
		),
		Observer: obs,
		Contact:  contact.NewFlow(s.sender, flowOpts...),
	}
}

package site

import (
	"context"
	"errors"

	"github.com/velveproduce/site/handler"
	"github.com/velveproduce/site/modules/site/views"
	"github.com/velveproduce/site/pkg/validator"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/navigation"
)

type ContactRequest struct {
	Name    string `form:"user_name"`
	Email   string `form:"user_email"`
	Phone   string `form:"user_phone"`
	Message string `form:"message"`
}

// submitContact runs one submission. Datastar clients first get the form in
// its sending state, then the outcome on the same stream. Plain form posts
// wait for the outcome and get the whole page.
func (s *Service) submitContact(ctx handler.Context, req ContactRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	plain := !handler.IsDataStar(ctx.Request())
	if plain {
		// the answer is a whole page, which must be the one holding the form
		if _, err := v.Nav.NavigateTo(navigation.Contact, ""); err != nil {
			return handler.Fail(err)
		}
	}

	fields := contact.Fields{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	inq, err := v.Contact.Begin(ctx, fields)
	switch {
	case validator.IsValidationError(err):
		entered := fields.Sanitize()
		return s.contactForm(s.params(v, validator.ExtractValidationErrors(err), &entered))
	case errors.Is(err, contact.ErrInFlight):
		return s.contactForm(s.params(v, nil, nil))
	case err != nil:
		return handler.Fail(err)
	}

	if plain {
		s.deliver(ctx, v, inq)
		return handler.Templ(s.views.Page(s.params(v, nil, nil)))
	}

	sending := s.params(v, nil, nil)
	return handler.SSE(func(stream handler.StreamContext) error {
		// Deliver must run even when the client is gone, or the flow
		// would stay in sending.
		sendErr := stream.SendComponent(s.views.ContactForm(sending))
		s.deliver(stream, v, inq)
		if sendErr != nil {
			return sendErr
		}
		return stream.SendComponent(s.views.ContactForm(s.params(v, nil, nil)))
	}, nil)
}

// resetContact clears a finished submission so the form can be used again.
func (s *Service) resetContact(ctx handler.Context, _ struct{}) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	if err := v.Contact.Reset(ctx); errors.Is(err, contact.ErrClosed) {
		return handler.Fail(err)
	}

	p := s.params(v, nil, nil)
	return handler.SSE(func(stream handler.StreamContext) error {
		return stream.SendComponent(s.views.ContactForm(p))
	}, handler.Redirect(pageURL(navigation.Contact, "")))
}

func (s *Service) contactForm(p views.PageParams) handler.Response {
	return handler.TemplPartial(s.views.ContactForm(p), s.views.Page(p), handler.WithTarget("#contact-form"))
}

// deliver finishes a submission started by Begin. The outcome is read back
// from the flow snapshot.
func (s *Service) deliver(ctx context.Context, v *Visitor, inq contact.Inquiry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SendTimeout)
	defer cancel()
	_ = v.Contact.Deliver(ctx, inq)
}

package site

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/velveproduce/site/handler"
	"github.com/velveproduce/site/pkg/i18n"
	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/svc/content"
	"github.com/velveproduce/site/svc/navigation"
)

// PageRequest is a full page load. Without parameters it shows the landing
// page from the top.
type PageRequest struct {
	Lang    string `query:"lang"`
	Page    string `query:"page"`
	Section string `query:"section"`
}

func (s *Service) index(ctx handler.Context, req PageRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	if req.Lang != "" {
		if l, ok := content.ParseLocale(req.Lang); ok && v.Nav.SetLocale(l) {
			s.metrics.LocaleChange(l.String())
			i18n.SetLanguageCookie(ctx.ResponseWriter(), ctx.Request(), l.String())
		}
	}

	page, ok := navigation.ParsePage(req.Page)
	if !ok {
		return handler.Fail(handler.ErrNotFound)
	}
	if _, err := v.Nav.NavigateTo(page, req.Section); err != nil {
		return handler.Fail(err)
	}

	return handler.Templ(s.views.Page(s.params(v, nil, nil)))
}

type NavigateRequest struct {
	Page    string `query:"page" form:"page"`
	Section string `query:"section" form:"section"`
}

// navigate switches page and streams the new markup. The scroll is sent
// once the browser reports the page mounted, or straight away when the page
// did not change.
func (s *Service) navigate(ctx handler.Context, req NavigateRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	page, ok := navigation.ParsePage(req.Page)
	if !ok {
		return handler.Fail(handler.ErrNotFound)
	}
	t, err := v.Nav.NavigateTo(page, req.Section)
	if err != nil {
		return handler.Fail(err)
	}
	s.metrics.Navigation(page.String())

	p := s.params(v, nil, nil)
	samePage := t.Ready()

	return handler.SSE(func(stream handler.StreamContext) error {
		patches := []handler.TemplPatch{handler.Patch(s.views.Header(p))}
		if !samePage {
			patches = append(patches, handler.Patch(s.views.Main(p)))
		}
		if err := stream.SendMultiple(patches...); err != nil {
			return err
		}

		waitCtx, cancel := context.WithTimeout(stream, s.cfg.MountTimeout)
		defer cancel()
		err := t.Await(waitCtx, scriptScroller{stream: stream})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, navigation.ErrSuperseded),
			errors.Is(err, navigation.ErrClosed),
			errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, context.Canceled):
			s.logger.DebugContext(stream, "scroll dropped",
				logger.Page(page.String()),
				logger.Section(t.Section()),
				logger.Error(err),
			)
			return nil
		}
		return err
	}, handler.Redirect(pageURL(page, t.Section())))
}

type MountedRequest struct {
	Page string `query:"page"`
	Seq  uint64 `query:"seq"`
}

// mounted is called by the browser whenever #page is (re)rendered.
func (s *Service) mounted(ctx handler.Context, req MountedRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	page, ok := navigation.ParsePage(req.Page)
	if !ok {
		return handler.Fail(handler.ErrBadRequest)
	}
	v.Nav.Mounted(page, req.Seq)
	return handler.Empty()
}

type VisibleRequest struct {
	ID    string  `query:"id"`
	Ratio float64 `query:"ratio"`
}

// sectionVisible records a section crossing into view and refreshes the nav
// when the active section changed.
func (s *Service) sectionVisible(ctx handler.Context, req VisibleRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	before := v.Nav.State().ActiveSection
	if !v.Observer.Report(req.ID, req.Ratio) {
		return handler.Empty()
	}
	if v.Nav.State().ActiveSection == before {
		return handler.Empty()
	}
	return handler.Templ(s.views.Header(s.params(v, nil, nil)))
}

type LocaleRequest struct {
	Lang string `query:"lang" form:"lang"`
}

// switchLocale sets the requested locale, or toggles it when none is given,
// and re-renders the whole app.
func (s *Service) switchLocale(ctx handler.Context, req LocaleRequest) handler.Response {
	v, err := currentVisitor(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	var l content.Locale
	if req.Lang != "" {
		parsed, ok := content.ParseLocale(req.Lang)
		if !ok {
			return handler.Fail(handler.ErrBadRequest)
		}
		v.Nav.SetLocale(parsed)
		l = parsed
	} else {
		l = v.Nav.ToggleLocale()
	}
	s.metrics.LocaleChange(l.String())
	i18n.SetLanguageCookie(ctx.ResponseWriter(), ctx.Request(), l.String())

	p := s.params(v, nil, nil)
	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendComponent(s.views.App(p)); err != nil {
			return err
		}
		return stream.ExecuteScript(fmt.Sprintf("document.documentElement.lang=%q", l.String()))
	}, handler.RedirectBack("/"))
}

// pageURL is the plain link for a page and landing section.
func pageURL(page navigation.Page, section string) string {
	q := url.Values{"page": {page.String()}}
	if section == "" {
		return "/?" + q.Encode()
	}
	q.Set("section", section)
	return "/?" + q.Encode() + "#" + url.PathEscape(section)
}

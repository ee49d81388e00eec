package site

import (
	"context"
	"embed"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/velveproduce/site/handler"
	"github.com/velveproduce/site/modules/site/views"
	"github.com/velveproduce/site/pkg/binder"
	"github.com/velveproduce/site/pkg/clientip"
	"github.com/velveproduce/site/pkg/i18n"
	"github.com/velveproduce/site/pkg/metrics"
	"github.com/velveproduce/site/pkg/qrcode"
	"github.com/velveproduce/site/pkg/ratelimiter"
	"github.com/velveproduce/site/pkg/validator"
	"github.com/velveproduce/site/pkg/visitor"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/content"
)

//go:embed locales/*.toml
var localeFS embed.FS

// NewTranslator loads the interface messages that are not part of the
// content catalog: form states, validation and error texts.
func NewTranslator(opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(localeFS, "locales/*.toml", opts...)
}

// Views are the components the service renders. Zero fields fall back to
// the views package.
type Views struct {
	Page        func(views.PageParams) templ.Component
	App         func(views.PageParams) templ.Component
	Header      func(views.PageParams) templ.Component
	Main        func(views.PageParams) templ.Component
	ContactForm func(views.PageParams) templ.Component

	ErrorPage func(handler.ErrorPageParams) templ.Component
	Toast     func(handler.ErrorToastParams) templ.Component
}

// DefaultViews renders with the views package.
func DefaultViews() Views {
	return Views{
		Page:        views.Page,
		App:         views.App,
		Header:      views.Header,
		Main:        views.Main,
		ContactForm: views.ContactForm,
		ErrorPage:   views.ErrorPage,
		Toast:       views.Toast,
	}
}

func (v Views) withDefaults() Views {
	def := DefaultViews()
	if v.Page == nil {
		v.Page = def.Page
	}
	if v.App == nil {
		v.App = def.App
	}
	if v.Header == nil {
		v.Header = def.Header
	}
	if v.Main == nil {
		v.Main = def.Main
	}
	if v.ContactForm == nil {
		v.ContactForm = def.ContactForm
	}
	if v.ErrorPage == nil {
		v.ErrorPage = def.ErrorPage
	}
	if v.Toast == nil {
		v.Toast = def.Toast
	}
	return v
}

// Service serves the marketing site: pages, navigation, locale switching and
// the contact form. Each browser gets its own Visitor.
type Service struct {
	cfg          Config
	catalog      *content.Catalog
	translator   *i18n.Translator
	matcher      *i18n.Matcher
	sender       contact.Sender
	notifier     contact.Notifier
	visitors     *visitor.Store[*Visitor]
	visitorCfg   visitor.Config
	limiter      *ratelimiter.Bucket
	ips          *clientip.Resolver
	metrics      *metrics.Metrics
	views        Views
	site         views.Site
	templateID   string
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier announces delivered inquiries, for example on Discord.
func WithNotifier(n contact.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithRateLimiter limits contact submissions per client IP.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Service) { s.limiter = b }
}

// WithClientIP sets the resolver used for rate limit keys.
func WithClientIP(r *clientip.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.ips = r
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithViews(v Views) Option {
	return func(s *Service) { s.views = v }
}

func WithSite(site views.Site) Option {
	return func(s *Service) { s.site = site }
}

// WithVisitorConfig sets the visitor cookie and expiry.
func WithVisitorConfig(cfg visitor.Config) Option {
	return func(s *Service) { s.visitorCfg = cfg }
}

// WithMatcher sets the supported languages. Defaults to es, en.
func WithMatcher(m *i18n.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithTemplateID names the EmailJS template in the "template not found"
// error message.
func WithTemplateID(id string) Option {
	return func(s *Service) { s.templateID = id }
}

// New builds the service. sender delivers contact inquiries.
func New(cfg Config, catalog *content.Catalog, translator *i18n.Translator, sender contact.Sender, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg.withDefaults(),
		catalog:    catalog,
		translator: translator,
		sender:     sender,
		visitorCfg: visitor.DefaultConfig(),
		ips:        clientip.NewResolver(),
		site:       views.DefaultSite(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.matcher == nil {
		s.matcher = i18n.MustMatcher(content.ES.String(), content.EN.String())
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.views = s.views.withDefaults()

	s.errorHandler = handler.NewErrorHandler(s.logger, handler.ErrorHandlerConfig{
		ErrorPage:  s.views.ErrorPage,
		ErrorToast: s.views.Toast,
		Translate: func(ctx context.Context, key string) string {
			return s.translator.Tc(ctx, key, nil)
		},
	})
	s.visitors = visitor.NewStore(s.visitorCfg, s.newVisitor)
	s.metrics.Gauge("visitors", "Visitors with live state.", func() float64 {
		return float64(s.visitors.Len())
	})
	return s
}

// Close drops every visitor.
func (s *Service) Close() {
	s.visitors.Purge()
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(
		s.ips.Middleware,
		s.visitors.Middleware,
		i18n.Middleware(s.matcher, nil),
		s.visitorLocale,
	)

	r.Get("/", handler.Wrap(s.index,
		handler.WithBinders[handler.Context, PageRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, PageRequest](s.errorHandler),
	))

	r.Post("/navigate", handler.Wrap(s.navigate,
		handler.WithBinders[handler.Context, NavigateRequest](binder.Query(), binder.Form()),
		handler.WithErrorHandler[handler.Context, NavigateRequest](s.errorHandler),
	))

	r.Post("/mounted", handler.Wrap(s.mounted,
		handler.WithBinders[handler.Context, MountedRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, MountedRequest](s.errorHandler),
	))

	r.Post("/sections/visible", handler.Wrap(s.sectionVisible,
		handler.WithBinders[handler.Context, VisibleRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, VisibleRequest](s.errorHandler),
	))

	r.Post("/locale", handler.Wrap(s.switchLocale,
		handler.WithBinders[handler.Context, LocaleRequest](binder.Query(), binder.Form()),
		handler.WithErrorHandler[handler.Context, LocaleRequest](s.errorHandler),
	))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter, s.contactLimitKey, s.limited()))
		}
		r.Post("/contact", handler.Wrap(s.submitContact,
			handler.WithBinders[handler.Context, ContactRequest](binder.Form()),
			handler.WithErrorHandler[handler.Context, ContactRequest](s.errorHandler),
		))
	})

	r.Post("/contact/reset", handler.Wrap(s.resetContact,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Method(http.MethodGet, "/qr/whatsapp.png", qrcode.Handler(s.site.WhatsAppURL, s.cfg.QRSize))

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Fail(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler)))

	return r
}

// visitorLocale seeds a new visitor's locale from language negotiation, then
// makes the visitor's locale the request locale.
func (s *Service) visitorLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := visitor.FromContext[*Visitor](r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		v.seedLocale(i18n.GetLocale(r.Context()))
		ctx := i18n.SetLocale(r.Context(), v.Nav.State().Locale.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) contactLimitKey(r *http.Request) string {
	ip := clientip.FromContext(r.Context())
	if ip == "" {
		return ""
	}
	return "contact:" + ip
}

func (s *Service) limited() http.Handler {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		s.metrics.RateLimited()
		return handler.Fail(handler.ErrTooManyRequests)
	}, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler))
}

func currentVisitor(ctx context.Context) (*Visitor, error) {
	v, ok := visitor.FromContext[*Visitor](ctx)
	if !ok || v == nil {
		return nil, handler.ErrInternal
	}
	return v, nil
}

// params snapshots the visitor for rendering. entered replaces the form
// values when a submission was rejected before reaching the flow.
func (s *Service) params(v *Visitor, errs validator.ValidationErrors, entered *contact.Fields) views.PageParams {
	st := v.Nav.State()
	snap := v.Contact.Snapshot()
	if entered != nil {
		snap.Fields = *entered
	}
	lang := st.Locale.String()
	return views.NewPageParams(st, s.catalog.Bundle(st.Locale),
		views.ContactParams{Snapshot: snap, Errors: errs, TemplateID: s.templateID},
		s.site,
		func(key string, data map[string]any) string { return s.translator.T(lang, key, data) },
	)
}

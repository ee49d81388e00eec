// Command velve serves the Velve Produce website.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/velveproduce/site/modules/site"
	"github.com/velveproduce/site/pkg/clientip"
	"github.com/velveproduce/site/pkg/config"
	"github.com/velveproduce/site/pkg/email"
	"github.com/velveproduce/site/pkg/httpserver"
	"github.com/velveproduce/site/pkg/i18n"
	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/pkg/metrics"
	"github.com/velveproduce/site/pkg/ratelimiter"
	"github.com/velveproduce/site/pkg/requestid"
	"github.com/velveproduce/site/pkg/visitor"
	"github.com/velveproduce/site/svc/contact"
	"github.com/velveproduce/site/svc/content"
)

type appConfig struct {
	Env              string   `env:"APP_ENV" envDefault:"development"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string   `env:"LOG_FORMAT" envDefault:"text"`
	ContactSender    string   `env:"CONTACT_SENDER" envDefault:"emailjs"` // emailjs, postmark or dev
	DevMailDir       string   `env:"DEV_MAIL_DIR" envDefault:".mail"`
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "velve: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	var (
		appCfg      appConfig
		httpCfg     httpserver.Config
		siteCfg     site.Config
		visitorCfg  visitor.Config
		limitCfg    ratelimiter.Config
		emailJSCfg  contact.EmailJSConfig
		postmarkCfg email.Config
		discordCfg  contact.DiscordConfig
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&siteCfg) },
		func() error { return config.Load(&visitorCfg) },
		func() error { return config.Load(&limitCfg) },
		func() error { return config.Load(&emailJSCfg) },
		func() error { return config.Load(&postmarkCfg) },
		func() error { return config.Load(&discordCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, "velve"),
		logger.WithLevelName(appCfg.LogLevel),
		logger.WithFormat(logger.Format(appCfg.LogFormat)),
		logger.WithContextExtractors(requestid.LogExtractor()),
	)

	catalog, err := content.Load()
	if err != nil {
		return err
	}
	translator, err := site.NewTranslator(
		i18n.WithDefaultLanguage(content.Default.String()),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(appCfg.Env != "production"),
	)
	if err != nil {
		return err
	}

	sender, templateID, err := contactSender(appCfg, siteCfg, emailJSCfg, postmarkCfg, log)
	if err != nil {
		return err
	}

	store := ratelimiter.NewMemoryStore(5 * time.Minute)
	defer store.Close()
	limiter, err := ratelimiter.NewBucket(store, limitCfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	ips := clientip.NewResolver(appCfg.TrustedIPHeaders...)

	opts := []site.Option{
		site.WithLogger(log.With(logger.Component("site"))),
		site.WithMetrics(m),
		site.WithRateLimiter(limiter),
		site.WithClientIP(ips),
		site.WithVisitorConfig(visitorCfg),
		site.WithTemplateID(templateID),
	}
	if discordCfg.Enabled() {
		notifier, err := contact.NewDiscordNotifier(discordCfg)
		if err != nil {
			return err
		}
		opts = append(opts, site.WithNotifier(notifier))
	}
	svc := site.New(siteCfg, catalog, translator, sender, opts...)
	defer svc.Close()

	var ready atomic.Bool
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestid.Middleware, m.Middleware)
	r.Handle("/metrics", m.Handler())
	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(log, map[string]httpserver.Check{
		"server": func(context.Context) error {
			if !ready.Load() {
				return errors.New("not accepting connections")
			}
			return nil
		},
	}))
	r.Mount("/", svc.Handle())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(addr string) {
			ready.Store(true)
			log.Info("velve started", slog.String("addr", addr), slog.String("contact_sender", appCfg.ContactSender))
		}),
		httpserver.WithStopHook(func() { ready.Store(false) }),
	)
	return srv.Run(ctx, r)
}

// contactSender picks the delivery channel for contact inquiries. The second
// result is the EmailJS template id, empty for other channels.
func contactSender(
	appCfg appConfig,
	siteCfg site.Config,
	emailJSCfg contact.EmailJSConfig,
	postmarkCfg email.Config,
	log *slog.Logger,
) (contact.Sender, string, error) {
	switch appCfg.ContactSender {
	case "emailjs", "":
		c, err := contact.NewEmailJSClient(emailJSCfg)
		if err != nil {
			return nil, "", err
		}
		return c, c.TemplateID(), nil
	case "postmark":
		pm, err := email.NewPostmarkClient(postmarkCfg)
		if err != nil {
			return nil, "", err
		}
		return contact.NewMailSender(pm, siteCfg.TeamEmail), "", nil
	case "dev":
		return contact.NewMailSender(email.NewDevSender(log, appCfg.DevMailDir), siteCfg.TeamEmail), "", nil
	default:
		return nil, "", fmt.Errorf("unknown CONTACT_SENDER %q", appCfg.ContactSender)
	}
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Translator renders catalog messages for a language.
// Catalogs are TOML files named "<name>.<lang>.toml" (for example active.es.toml).
type Translator struct {
	bundle      *goi18n.Bundle
	defaultLang string
	logger      *slog.Logger
	logMissing  bool
	localizers  sync.Map // lang -> *goi18n.Localizer
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the fallback language. Defaults to "es".
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger used for load and lookup problems.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs every lookup of an unknown message id.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

// NewTranslator loads every catalog in fsys matching pattern.
func NewTranslator(fsys fs.FS, pattern string, opts ...Option) (*Translator, error) {
	t := &Translator{
		defaultLang: "es",
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadMessages, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: pattern %q", ErrNoMessageFiles, pattern)
	}

	t.bundle = goi18n.NewBundle(language.Make(t.defaultLang))
	t.bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range files {
		if _, err := t.bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrFailedToLoadMessages, file, err)
		}
	}

	return t, nil
}

// Languages returns the languages that have at least one catalog.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, tag := range tags {
		langs = append(langs, baseCode(tag))
	}
	return langs
}

// T renders message key in lang with optional template data. Keys missing in
// lang fall back to the default language; unknown keys render as the key
// itself so gaps are visible on the page.
func (t *Translator) T(lang, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	msg, err := t.localizer(lang).Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err == nil {
		return msg
	}
	if t.logMissing {
		t.logger.Warn("translation missing",
			slog.String("lang", lang),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	// a missing message comes back rendered in the default language
	var notFound *goi18n.MessageNotFoundErr
	if errors.As(err, &notFound) && msg != "" {
		return msg
	}
	return key
}

// Tc is T with the language taken from the context (see SetLocale).
func (t *Translator) Tc(ctx context.Context, key string, data map[string]any) string {
	return t.T(GetLocale(ctx), key, data)
}

// Has reports whether key exists in lang without falling back.
func (t *Translator) Has(lang, key string) bool {
	_, tag, err := goi18n.NewLocalizer(t.bundle, lang).LocalizeWithTag(&goi18n.LocalizeConfig{MessageID: key})
	return err == nil && baseCode(tag) == lang
}

func (t *Translator) localizer(lang string) *goi18n.Localizer {
	if lang == "" {
		lang = t.defaultLang
	}
	if l, ok := t.localizers.Load(lang); ok {
		return l.(*goi18n.Localizer)
	}
	l, _ := t.localizers.LoadOrStore(lang, goi18n.NewLocalizer(t.bundle, lang, t.defaultLang))
	return l.(*goi18n.Localizer)
}

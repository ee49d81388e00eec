package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the log output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option configures New.
type Option func(*config)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithLevelName parses a level name such as "debug" or "WARN".
// Unknown names leave the level unchanged.
func WithLevelName(name string) Option {
	return func(c *config) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err == nil {
			c.level = l
		}
	}
}

// WithFormat sets the output format. It panics on unknown formats so a typo
// in configuration stops the process at startup.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the destination. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextExtractors registers extractors run on every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name when present.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithEnvironment applies the defaults for env and tags records with the
// service and environment names. "production" and "prod" log JSON at info
// level, everything else logs text at debug level.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		switch strings.ToLower(env) {
		case "production", "prod":
			c.level = slog.LevelInfo
			c.format = FormatJSON
			env = "production"
		default:
			c.level = slog.LevelDebug
			c.format = FormatText
			if env == "" {
				env = "development"
			}
		}
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", env))
	}
}

// New builds a logger. Defaults to JSON on stdout at info level.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

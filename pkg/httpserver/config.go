package httpserver

import (
	"log/slog"
	"time"
)

// Config is the environment facing server configuration.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Option overrides a Config field or adds a hook.
type Option func(*options)

type options struct {
	Config
	logger     *slog.Logger
	startHooks []func(addr string)
	stopHooks  []func()
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.Addr = addr
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}

// WithStartHook runs h with the listen address right before serving.
func WithStartHook(h func(addr string)) Option {
	return func(o *options) { o.startHooks = append(o.startHooks, h) }
}

// WithStopHook runs h after a graceful shutdown.
func WithStopHook(h func()) Option {
	return func(o *options) { o.stopHooks = append(o.stopHooks, h) }
}

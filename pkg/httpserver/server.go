package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/velveproduce/site/pkg/logger"
)

// Server runs an http.Server until the context ends or SIGINT/SIGTERM arrives.
type Server struct {
	opts options

	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
}

// New builds a server from cfg. Zero Config fields keep their zero value,
// which http.Server reads as "no timeout".
func New(cfg Config, opts ...Option) *Server {
	o := options{Config: cfg, logger: logger.Discard()}
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{opts: o}
}

// Run blocks serving handler. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}
	s.srv = srv
	s.mu.Unlock()

	addr := ln.Addr().String()
	for _, h := range s.opts.startHooks {
		h(addr)
	}
	s.opts.logger.Info("http server started", logger.Component("httpserver"), "addr", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdownAndWait(errCh)
	case sig := <-stop:
		s.opts.logger.Info("signal received", "signal", sig.String())
		runErr = s.shutdownAndWait(errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return runErr
	}
	return nil
}

func (s *Server) shutdownAndWait(errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown gracefully stops the server. Repeated calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)

		for _, h := range s.opts.stopHooks {
			h()
		}
		s.opts.logger.Info("http server stopped", logger.Component("httpserver"), logger.Error(err))
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

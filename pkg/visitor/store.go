package visitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Config controls the visitor cookie and cache bounds.
type Config struct {
	CookieName    string        `env:"VISITOR_COOKIE_NAME" envDefault:"vid"`
	IdleTimeout   time.Duration `env:"VISITOR_IDLE_TIMEOUT" envDefault:"30m"`
	MaxVisitors   int           `env:"VISITOR_MAX" envDefault:"10000"`
	SecureCookies bool          `env:"VISITOR_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		CookieName:  "vid",
		IdleTimeout: 30 * time.Minute,
		MaxVisitors: 10000,
	}
}

// Closer is implemented by state that must be torn down on eviction.
type Closer interface {
	Close()
}

// Store keeps one value of T per visitor id in an expiring LRU. Every access
// slides the expiry. Values evicted by age or capacity are closed when they
// implement Closer.
type Store[T any] struct {
	cfg     Config
	factory func(id string) T
	cache   *expirable.LRU[string, T]
	mu      sync.Mutex // serializes get-or-create
}

// NewStore builds a store. factory creates state for new visitors.
func NewStore[T any](cfg Config, factory func(id string) T) *Store[T] {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.MaxVisitors <= 0 {
		cfg.MaxVisitors = def.MaxVisitors
	}

	s := &Store[T]{cfg: cfg, factory: factory}
	s.cache = expirable.NewLRU(cfg.MaxVisitors, func(_ string, v T) {
		if c, ok := any(v).(Closer); ok {
			c.Close()
		}
	}, cfg.IdleTimeout)
	return s
}

// Get returns the state for id and refreshes its expiry.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(id)
}

// Ensure resolves the visitor for r, creating state and issuing a cookie
// when the request carries no known id.
func (s *Store[T]) Ensure(w http.ResponseWriter, r *http.Request) (string, T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if v, ok := s.touch(c.Value); ok {
				return c.Value, v
			}
		}
	}

	id := uuid.NewString()
	v := s.factory(id)
	s.cache.Add(id, v)
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id, v
}

// Remove drops a visitor, closing its state.
func (s *Store[T]) Remove(id string) {
	s.cache.Remove(id)
}

// Len is the number of live visitors.
func (s *Store[T]) Len() int {
	return s.cache.Len()
}

// Purge drops every visitor, closing their state.
func (s *Store[T]) Purge() {
	s.cache.Purge()
}

// Middleware ensures a visitor for every request and stores it in the context.
func (s *Store[T]) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, v := s.Ensure(w, r)
		ctx := context.WithValue(r.Context(), contextKey{}, entry[T]{id: id, value: v})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Store[T]) touch(id string) (T, bool) {
	v, ok := s.cache.Get(id)
	if ok {
		// re-adding an existing key resets its expiry without eviction
		s.cache.Add(id, v)
	}
	return v, ok
}

type contextKey struct{}

type entry[T any] struct {
	id    string
	value T
}

// FromContext returns the visitor state stored by Middleware.
func FromContext[T any](ctx context.Context) (T, bool) {
	e, ok := ctx.Value(contextKey{}).(entry[T])
	return e.value, ok
}

// IDFromContext returns the visitor id stored by Middleware.
func IDFromContext[T any](ctx context.Context) string {
	e, _ := ctx.Value(contextKey{}).(entry[T])
	return e.id
}

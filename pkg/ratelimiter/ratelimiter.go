package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int // negative when the request was rejected
	ResetAt   time.Time
}

func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is zero for allowed requests.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens takes tokens from key's bucket after refilling it and
	// returns what is left. A negative remainder means the request is denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Bucket is a token bucket limiter over a Store.
type Bucket struct {
	store Store
	cfg   Config
}

func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, cfg: cfg}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, 1, b.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: b.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory and drops the ones not touched
// for an hour.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time

	stop chan struct{}
	once sync.Once
}

type MemoryStoreOption func(*MemoryStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) { ms.now = now }
}

// NewMemoryStore starts a sweeper running every cleanupInterval. Zero
// disables it.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets: make(map[string]*bucketState),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}
	if cleanupInterval > 0 {
		go ms.sweep(cleanupInterval)
	}
	return ms
}

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// cap the interval count so huge gaps cannot overflow
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	if n := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), maxIntervals)); n > 0 {
		b.tokens = min(b.tokens+n*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	// denied requests do not dig the bucket deeper
	if b.tokens-tokens < 0 {
		b.lastAccess = now
		return b.tokens - tokens, b.lastRefill.Add(cfg.RefillInterval), nil
	}
	b.tokens -= tokens
	b.lastAccess = now
	return b.tokens, b.lastRefill.Add(cfg.RefillInterval), nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.buckets, key)
	ms.mu.Unlock()
	return nil
}

// Close stops the sweeper.
func (ms *MemoryStore) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

func (ms *MemoryStore) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			ms.removeStale(time.Hour)
		case <-ms.stop:
			return
		}
	}
}

func (ms *MemoryStore) removeStale(age time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	now := ms.now()
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > age {
			delete(ms.buckets, key)
		}
	}
}

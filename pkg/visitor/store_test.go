package visitor_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/pkg/visitor"
)

type state struct {
	id     string
	closed atomic.Bool
}

func (s *state) Close() { s.closed.Store(true) }

func newStore(cfg visitor.Config) *visitor.Store[*state] {
	return visitor.NewStore(cfg, func(id string) *state { return &state{id: id} })
}

func TestStore_Middleware(t *testing.T) {
	t.Parallel()

	store := newStore(visitor.DefaultConfig())
	var seen *state
	var seenID string
	h := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		seen, ok = visitor.FromContext[*state](r.Context())
		require.True(t, ok)
		seenID = visitor.IDFromContext[*state](r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "vid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	first := seen
	assert.Equal(t, cookies[0].Value, seenID)
	assert.Equal(t, seenID, first.id)

	// the cookie brings back the same state without a new cookie
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Same(t, first, seen)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, store.Len())

	t.Run("unknown or malformed id gets fresh state", func(t *testing.T) {
		for _, v := range []string{"not-a-uuid", "6f1c2d3e-0000-4000-8000-000000000000"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "vid", Value: v})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.NotSame(t, first, seen)
			require.Len(t, rec.Result().Cookies(), 1)
			assert.NotEqual(t, v, rec.Result().Cookies()[0].Value)
		}
	})
}

func TestStore_EvictionClosesState(t *testing.T) {
	t.Parallel()

	store := newStore(visitor.Config{MaxVisitors: 1, IdleTimeout: time.Hour})

	_, a := store.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_, b := store.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, a.closed.Load())
	assert.False(t, b.closed.Load())

	store.Remove(b.id)
	assert.True(t, b.closed.Load())
	assert.Zero(t, store.Len())
}

func TestStore_IdleExpiry(t *testing.T) {
	t.Parallel()

	store := newStore(visitor.Config{IdleTimeout: 50 * time.Millisecond})
	id, v := store.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, v, got)

	// Get refreshes the expiry, so only poll what does not touch the entry
	assert.Eventually(t, func() bool {
		return store.Len() == 0 && v.closed.Load()
	}, time.Second, 10*time.Millisecond)

	_, ok = store.Get(id)
	assert.False(t, ok)
}

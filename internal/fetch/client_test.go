package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value string `json:"value"`
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingTransport struct {
	calls atomic.Int32
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"value":"hello"}`))
}

func TestGet_CachesWithinTTL(t *testing.T) {
	srv, calls := newServer(t, okHandler)
	clock := &fakeClock{now: time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)}
	c := New(Config{Name: "cache-test", BaseURL: srv.URL, TTL: time.Minute, RetryDelay: time.Millisecond, Now: clock.Now})
	ctx := context.Background()

	var first, second payload
	require.NoError(t, c.Get(ctx, "/items", map[string]string{"a": "1", "b": "2"}, &first))
	require.NoError(t, c.Get(ctx, "/items", map[string]string{"b": "2", "a": "1"}, &second))

	assert.Equal(t, int32(1), calls.Load(), "identical requests within TTL should hit the network once")
	assert.Equal(t, "hello", second.Value)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheHitsTotal.WithLabelValues("cache-test")))

	require.NoError(t, c.Get(ctx, "/items", map[string]string{"a": "2"}, &second))
	assert.Equal(t, int32(2), calls.Load(), "different params should miss the cache")

	clock.Advance(2 * time.Minute)
	require.NoError(t, c.Get(ctx, "/items", map[string]string{"a": "1", "b": "2"}, &second))
	assert.Equal(t, int32(3), calls.Load(), "request after expiry should hit the network")
}

func TestGet_NoCacheWhenTTLZero(t *testing.T) {
	srv, calls := newServer(t, okHandler)
	c := New(Config{Name: "nocache-test", BaseURL: srv.URL})

	var out payload
	require.NoError(t, c.Get(context.Background(), "/items", nil, &out))
	require.NoError(t, c.Get(context.Background(), "/items", nil, &out))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	var n atomic.Int32
	srv, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		okHandler(w, r)
	})
	c := New(Config{Name: "retry-test", BaseURL: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond})

	var out payload
	require.NoError(t, c.Get(context.Background(), "/items", nil, &out))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "hello", out.Value)
}

func TestGet_ExhaustsRetries(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := New(Config{Name: "exhaust-test", BaseURL: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond})

	err := c.Get(context.Background(), "/items", nil, &payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestGet_PermanentStatusStopsRetrying(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})
	c := New(Config{Name: "permanent-test", BaseURL: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond})

	err := c.Get(context.Background(), "/items", nil, &payload{})
	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_FailingTransport(t *testing.T) {
	transport := &failingTransport{}
	c := New(Config{Name: "transport-test", BaseURL: "http://upstream.invalid", MaxRetries: 2, RetryDelay: time.Millisecond, Transport: transport})

	err := c.Get(context.Background(), "/items", nil, &payload{})
	require.Error(t, err)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, int32(3), transport.calls.Load())
}

func TestGet_AttemptTimeout(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := New(Config{Name: "timeout-test", BaseURL: srv.URL, MaxRetries: 1, RetryDelay: time.Millisecond, AttemptTimeout: 50 * time.Millisecond})

	start := time.Now()
	err := c.Get(context.Background(), "/slow", nil, &payload{})
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, time.Since(start), time.Second)
}

func TestGet_MalformedPayloadIsNotCached(t *testing.T) {
	srv, calls := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":`))
	})
	c := New(Config{Name: "malformed-test", BaseURL: srv.URL, TTL: time.Minute})

	err := c.Get(context.Background(), "/items", nil, &payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Equal(t, 0, c.Len())

	_ = c.Get(context.Background(), "/items", nil, &payload{})
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_CanceledContext(t *testing.T) {
	srv, calls := newServer(t, okHandler)
	c := New(Config{Name: "cancel-test", BaseURL: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/items", nil, &payload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestGet_SendsConfiguredHeadersAndQuery(t *testing.T) {
	var gotKey, gotHeader, gotParam string
	srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotParam = r.URL.Query().Get("page")
		gotHeader = r.Header.Get("Authorization")
		okHandler(w, r)
	})
	c := New(Config{
		Name:    "header-test",
		BaseURL: srv.URL,
		Headers: map[string]string{"Authorization": "Bearer token"},
		Query:   map[string]string{"api_key": "secret"},
	})

	require.NoError(t, c.Get(context.Background(), "/items", map[string]string{"page": "1"}, &payload{}))
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "1", gotParam)
	assert.Equal(t, "Bearer token", gotHeader)
}

func TestSweep(t *testing.T) {
	srv, _ := newServer(t, okHandler)
	clock := &fakeClock{now: time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC)}
	c := New(Config{Name: "sweep-test", BaseURL: srv.URL, TTL: time.Minute, Now: clock.Now})

	require.NoError(t, c.Get(context.Background(), "/a", nil, &payload{}))
	clock.Advance(30 * time.Second)
	require.NoError(t, c.Get(context.Background(), "/b", nil, &payload{}))
	require.Equal(t, 2, c.Len())

	clock.Advance(45 * time.Second)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestStatusError_Retryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		se := &StatusError{StatusCode: tt.status}
		assert.Equal(t, tt.want, se.Retryable(), "status %d", tt.status)
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "/x", cacheKey("/x", nil))
	assert.Equal(t, cacheKey("/x", map[string]string{"b": "2", "a": "1"}), cacheKey("/x", map[string]string{"a": "1", "b": "2"}))
	assert.Equal(t, "/x?a=1&b=2", cacheKey("/x", map[string]string{"b": "2", "a": "1"}))
}

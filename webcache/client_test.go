package webcache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-cache-trace/pkg/testsupport"
	"github.com/goliatone/go-cache-trace/store"
)

// stubFetcher serves a fixed body and tracks how often it is asked.
type stubFetcher struct {
	calls atomic.Int32
	body  string
	err   error
}

func (f *stubFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.body, nil
}

func newTestClient(t *testing.T, s store.Store, cfg Config) *Client {
	t.Helper()

	if cfg.Logger == nil {
		cfg.Logger = zaptest.NewLogger(t)
	}
	client, err := New(s, cfg)
	require.NoError(t, err)
	return client
}

func TestClient_FetchCachesBody(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("hello from upstream"))
	}))
	defer upstream.Close()

	client := newTestClient(t, store.NewMemoryStore(), Config{})
	ctx := context.Background()

	body, err := client.Fetch(ctx, upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello from upstream", body)

	again, err := client.Fetch(ctx, upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, body, again)

	assert.Equal(t, int32(1), hits.Load(), "second fetch should be served from cache")

	count, err := client.AccessCount(ctx, upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "both fetches should count")
}

func TestClient_CacheExpiresAfterTTL(t *testing.T) {
	fetcher := &stubFetcher{body: "page body"}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := store.NewMemoryStore(store.WithClock(func() time.Time { return now }))

	client := newTestClient(t, s, Config{
		TTL:     10 * time.Second,
		Fetcher: fetcher,
	})
	ctx := context.Background()

	_, err := client.Fetch(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	// Still cached just before the deadline.
	now = now.Add(9 * time.Second)
	_, err = client.Fetch(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	// Expired once the deadline passes.
	now = now.Add(time.Second)
	_, err = client.Fetch(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())

	count, err := client.AccessCount(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestClient_FailedFetchStillCounts(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	s := store.NewMemoryStore()
	client := newTestClient(t, s, Config{})
	ctx := context.Background()

	_, err := client.Fetch(ctx, upstream.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	count, err := client.AccessCount(ctx, upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "failed fetches count as accesses")

	// Error responses are never cached.
	_, ok, err := s.Get(ctx, CacheKey(upstream.URL))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_FetchEmptyURL(t *testing.T) {
	client := newTestClient(t, store.NewMemoryStore(), Config{Fetcher: &stubFetcher{}})

	_, err := client.Fetch(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url must not be empty")
}

func TestClient_FetcherErrorPassesThrough(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("upstream unreachable")}
	client := newTestClient(t, store.NewMemoryStore(), Config{Fetcher: fetcher})

	_, err := client.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, fetcher.err)
}

func TestClient_AccessCountNeverFetched(t *testing.T) {
	client := newTestClient(t, store.NewMemoryStore(), Config{Fetcher: &stubFetcher{}})

	count, err := client.AccessCount(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative TTL", cfg: Config{TTL: -time.Second}},
		{name: "negative HTTP timeout", cfg: Config{HTTPTimeout: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(store.NewMemoryStore(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "webcache config")
		})
	}
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	client, err := New(store.NewMemoryStore(), Config{})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, client.ttl)
}

func TestHTTPFetcher_FetchText(t *testing.T) {
	page := testsupport.LoadFixture(t, testsupport.FixturePath("page.html"))
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(page)
	}))
	defer upstream.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	ctx := context.Background()

	body, err := fetcher.FetchText(ctx, upstream.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, string(page), body)

	_, err = fetcher.FetchText(ctx, upstream.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

package webcache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/store"
)

const (
	// countPrefix namespaces the per-URL access counters.
	countPrefix = "count:"

	// cachePrefix namespaces the cached page bodies.
	cachePrefix = "cached:"
)

// CountKey returns the store key of the access counter for url.
func CountKey(url string) string {
	return countPrefix + url
}

// CacheKey returns the store key of the cached body for url.
func CacheKey(url string) string {
	return cachePrefix + url
}

// Client fetches pages through a store-backed cache. Every fetch attempt
// bumps a per-URL access counter, cached or not, so the counter reports
// demand rather than upstream traffic.
type Client struct {
	store   store.Store
	fetcher Fetcher
	ttl     time.Duration
	logger  *zap.Logger
}

// New creates a web cache client over s. Zero-valued Config fields take
// their defaults before validation.
func New(s store.Store, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("webcache config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(cfg.HTTPTimeout)
	}

	return &Client{
		store:   s,
		fetcher: fetcher,
		ttl:     cfg.TTL,
		logger:  logger,
	}, nil
}

// Fetch returns the body of url, serving from cache when a fresh copy
// exists. The access counter is incremented before anything else; a fetch
// that ends in an error still counts. A fetched body is cached for the
// configured TTL.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("url must not be empty")
	}

	if _, err := c.store.Incr(ctx, CountKey(url)); err != nil {
		return "", fmt.Errorf("count access %s: %w", url, err)
	}

	cached, ok, err := c.store.Get(ctx, CacheKey(url))
	if err != nil {
		return "", fmt.Errorf("read cache %s: %w", url, err)
	}
	if ok {
		c.logger.Debug("web cache hit", zap.String("url", url))
		return string(cached), nil
	}

	c.logger.Debug("web cache miss", zap.String("url", url))
	body, err := c.fetcher.FetchText(ctx, url)
	if err != nil {
		return "", err
	}

	if err := c.store.SetWithTTL(ctx, CacheKey(url), []byte(body), c.ttl); err != nil {
		return "", fmt.Errorf("cache page %s: %w", url, err)
	}
	return body, nil
}

// AccessCount reports how many times Fetch has been attempted for url. A URL
// that was never fetched reports zero.
func (c *Client) AccessCount(ctx context.Context, url string) (int64, error) {
	val, ok, err := c.store.Get(ctx, CountKey(url))
	if err != nil {
		return 0, fmt.Errorf("read access count %s: %w", url, err)
	}
	if !ok {
		return 0, nil
	}

	n, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("access count %s holds a non-integer value: %w", url, err)
	}
	return n, nil
}

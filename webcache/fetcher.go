package webcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the text body of a URL.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// httpFetcher fetches pages over plain HTTP GET.
type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a Fetcher backed by an HTTP client with the given
// timeout. A zero timeout means no limit.
func NewHTTPFetcher(timeout time.Duration) Fetcher {
	return &httpFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *httpFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return string(body), nil
}

package pager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Default transport settings.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "portalgun"

	// maxBodyBytes bounds a single page body.
	maxBodyBytes = 16 << 20
)

// Response is one page as returned by a Fetcher.
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte

	// Cached is set when the body was served from a local cache.
	Cached bool
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves one URL. Unsuccessful statuses are returned as a Response,
// not an error; err is reserved for transport failures.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// HTTPFetcher is the default Fetcher over net/http.
type HTTPFetcher struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewHTTPFetcher returns an HTTPFetcher with the given per-request timeout.
// A non-positive timeout uses DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  DefaultUserAgent,
	}
}

// Fetch performs a GET and reads the whole body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       body,
	}, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

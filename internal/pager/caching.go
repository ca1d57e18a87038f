package pager

import (
	"context"
	"errors"
	"net/http"

	"github.com/rshade/portalgun/internal/engine/cache"
	"github.com/rshade/portalgun/internal/logging"
)

// CachingFetcher answers from a page cache and falls through to the wrapped
// Fetcher on a miss. Only successful, valid JSON bodies are stored.
type CachingFetcher struct {
	next  Fetcher
	store *cache.FileStore
}

// NewCachingFetcher wraps next with store. A nil or disabled store makes the
// wrapper a pass-through.
func NewCachingFetcher(next Fetcher, store *cache.FileStore) *CachingFetcher {
	return &CachingFetcher{next: next, store: store}
}

// Fetch implements Fetcher.
func (c *CachingFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	if c.store == nil || !c.store.IsEnabled() {
		return c.next.Fetch(ctx, url)
	}
	log := logging.FromContext(ctx)

	entry, err := c.store.Get(url)
	switch {
	case err == nil:
		return &Response{
			StatusCode: http.StatusOK,
			StatusText: http.StatusText(http.StatusOK),
			Body:       entry.Body,
			Cached:     true,
		}, nil
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
	default:
		log.Warn().Ctx(ctx).
			Str("component", "pager").
			Str("operation", "cache_get").
			Str("url", url).
			Err(err).
			Msg("page cache read failed, fetching upstream")
	}

	resp, err := c.next.Fetch(ctx, url)
	if err != nil || !resp.OK() {
		return resp, err
	}

	if setErr := c.store.Set(url, resp.Body); setErr != nil {
		log.Warn().Ctx(ctx).
			Str("component", "pager").
			Str("operation", "cache_set").
			Str("url", url).
			Err(setErr).
			Msg("page not cached")
	}
	return resp, nil
}

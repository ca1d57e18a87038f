// Package pager drains the upstream catalog's cursor-paginated collections.
//
// A drain starts at the per-kind endpoint and follows each page's info.next
// link until the upstream reports no further page. Pages are requested one at
// a time because every cursor comes from the previous response. Any failure
// discards everything accumulated so far.
package pager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/logging"
)

// DefaultBaseURL is the public catalog API.
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// pageBody is the paging envelope. Results is a pointer so a missing array
// can be told apart from an empty one.
type pageBody struct {
	Results *[]json.RawMessage `json:"results"`
	Info    *pageInfo          `json:"info"`
}

type pageInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
}

// PageFetcher drains collections through a Fetcher.
type PageFetcher struct {
	fetcher Fetcher
	baseURL string
}

// NewPageFetcher returns a PageFetcher rooted at baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewPageFetcher(fetcher Fetcher, baseURL string) *PageFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PageFetcher{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Endpoint returns the first-page URL for kind.
func (p *PageFetcher) Endpoint(kind catalog.Kind) string {
	return p.baseURL + "/" + string(kind)
}

// Drain returns every raw item of kind in upstream page order. It fails with
// *FetchError on an unsuccessful response or transport error and with
// *ProtocolError on a malformed page or a repeated cursor.
func (p *PageFetcher) Drain(ctx context.Context, kind catalog.Kind) ([]json.RawMessage, error) {
	log := logging.FromContext(ctx)
	resource := string(kind)

	url := p.Endpoint(kind)
	visited := map[string]struct{}{}
	var all []json.RawMessage

	for page := 1; url != ""; page++ {
		visited[url] = struct{}{}

		resp, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, newTransportError(resource, err)
		}
		if !resp.OK() {
			log.Debug().Ctx(ctx).
				Str("component", "pager").
				Str("operation", "drain").
				Str("kind", resource).
				Int("page", page).
				Int("status", resp.StatusCode).
				Msg("unsuccessful page response")
			return nil, newStatusError(resource, resp.StatusCode, resp.StatusText)
		}

		var body pageBody
		if err = json.Unmarshal(resp.Body, &body); err != nil {
			return nil, &ProtocolError{
				Resource: resource,
				Reason:   fmt.Sprintf("page %d: %v", page, err),
				Err:      ErrMalformedPage,
			}
		}
		if body.Results == nil {
			return nil, &ProtocolError{
				Resource: resource,
				Reason:   fmt.Sprintf("page %d: %v", page, ErrMissingResults),
				Err:      ErrMissingResults,
			}
		}
		all = append(all, *body.Results...)

		next := ""
		if body.Info != nil && body.Info.Next != nil {
			next = *body.Info.Next
		}

		log.Debug().Ctx(ctx).
			Str("component", "pager").
			Str("operation", "drain").
			Str("kind", resource).
			Int("page", page).
			Int("count", len(*body.Results)).
			Bool("cached", resp.Cached).
			Bool("has_next", next != "").
			Msg("page received")

		if next != "" {
			if _, seen := visited[next]; seen {
				return nil, &ProtocolError{
					Resource: resource,
					Reason:   fmt.Sprintf("page %d: %v: %s", page, ErrCursorCycle, next),
					Err:      ErrCursorCycle,
				}
			}
		}
		url = next
	}

	log.Debug().Ctx(ctx).
		Str("component", "pager").
		Str("operation", "drain").
		Str("kind", resource).
		Int("total", len(all)).
		Msg("drain complete")

	return all, nil
}

// DrainItems drains kind and decodes every item. A decoding failure is
// reported as a *ProtocolError.
func (p *PageFetcher) DrainItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	raws, err := p.Drain(ctx, kind)
	if err != nil {
		return nil, err
	}
	items, err := catalog.DecodeAll(kind, raws)
	if err != nil {
		return nil, &ProtocolError{
			Resource: string(kind),
			Reason:   err.Error(),
			Err:      errors.Join(ErrMalformedItem, err),
		}
	}
	return items, nil
}

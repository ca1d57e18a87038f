package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/cli/pagination"
	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/engine/cache"
	"github.com/rshade/portalgun/internal/logging"
	"github.com/rshade/portalgun/internal/pager"
	"github.com/rshade/portalgun/internal/query"
)

// newPageFetcher builds the drain pipeline described by cfg: an HTTP fetcher,
// wrapped by the page cache when caching is enabled.
func newPageFetcher(ctx context.Context, cfg *config.Config) (*pager.PageFetcher, error) {
	log := logging.FromContext(ctx)

	httpFetcher := pager.NewHTTPFetcher(cfg.API.Timeout)
	if cfg.API.UserAgent != "" {
		httpFetcher.UserAgent = cfg.API.UserAgent
	}

	var fetcher pager.Fetcher = httpFetcher
	if cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
		if err != nil {
			return nil, fmt.Errorf("opening page cache: %w", err)
		}
		fetcher = pager.NewCachingFetcher(httpFetcher, store)
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("cache_dir", cfg.Cache.Directory).
			Int("ttl_seconds", cfg.Cache.TTLSeconds).
			Msg("page cache enabled")
	}

	return pager.NewPageFetcher(fetcher, cfg.API.BaseURL), nil
}

// newController returns a query controller draining through cfg's pipeline.
func newController(ctx context.Context, cfg *config.Config, opts ...query.Option) (*query.Controller, error) {
	pf, err := newPageFetcher(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]query.Option{
		query.WithDefaultPageSize(cfg.Query.DefaultPageSize),
		query.WithLogger(logging.ComponentLogger(*logging.FromContext(ctx), "query")),
	}, opts...)
	return query.New(pf, opts...), nil
}

// runQuery drains q.Kind, applies q's filter, sort and window, and returns the
// resulting state. A drain failure is returned both in the state and as the
// error.
func runQuery(ctx context.Context, ctrl *query.Controller, q pagination.Query) (query.State, error) {
	log := logging.FromContext(ctx)

	if err := ctrl.SetKind(ctx, q.Kind); err != nil {
		return query.State{}, err
	}
	st, err := ctrl.Wait(ctx)
	if err != nil {
		return st, err
	}
	if st.Err != nil {
		log.Error().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "run_query").
			Str("kind", q.Kind.String()).
			Err(st.Err).
			Msg("drain failed")
		return st, st.Err
	}

	ctrl.SetFilters(q.Filter)
	if q.Sort != nil {
		ctrl.SetSort(q.Sort.Field, q.Sort.Direction)
	}
	if err = ctrl.SetPageSize(q.Window.Size); err != nil {
		return ctrl.State(), err
	}
	ctrl.SetPage(q.Window.Page - 1)

	st = ctrl.State()
	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "run_query").
		Str("kind", q.Kind.String()).
		Int("total", st.Total).
		Int("page", st.Window.Page).
		Int("count", len(st.Items)).
		Msg("query applied")

	if st.Empty && len(q.Filter) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "run_query").
			Str("kind", q.Kind.String()).
			Msg("no items match filter criteria")
	}
	return st, nil
}

// parseKindArg resolves a kind argument, falling back to the configured
// default kind when args is empty.
func parseKindArg(args []string, cfg *config.Config) (catalog.Kind, error) {
	name := cfg.Query.DefaultKind
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return "", errors.New("a resource kind is required (character, location, episode)")
	}
	return catalog.ParseKind(name)
}

// Package query owns the state of one catalog query: which kind is shown, the
// filter, sort and page window applied to it, and the drained collection they
// are applied to.
//
// Only the Controller mutates that state. Mutators are synchronous. A kind
// change or refresh starts a drain on a goroutine; every drain is tagged with
// a version and a result whose version is no longer current is dropped, so
// at most one drain ever commits and the published State never mixes old and
// new parameters.
package query

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
)

// Controller errors.
var (
	ErrNoKind = errors.New("no resource kind selected")
	ErrClosed = errors.New("query controller is closed")
)

// Drainer produces the full decoded collection of a kind.
type Drainer interface {
	DrainItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
}

// DrainerFunc adapts a function to Drainer.
type DrainerFunc func(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)

// DrainItems implements Drainer.
func (f DrainerFunc) DrainItems(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	return f(ctx, kind)
}

// Controller runs the drain, filter, sort and paginate pipeline.
type Controller struct {
	drainer         Drainer
	defaultPageSize int
	logger          zerolog.Logger
	onChange        func(State)

	mu         sync.Mutex
	kind       catalog.Kind
	filter     engine.FilterSpec
	sort       *engine.SortSpec
	window     engine.PageWindow
	collection []catalog.Item
	ordered    []catalog.Item
	err        error
	loading    bool
	version    uint64
	revision   uint64
	cancel     context.CancelFunc
	idle       chan struct{}
	closed     bool

	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

// New returns a Controller with no kind selected.
func New(drainer Drainer, opts ...Option) *Controller {
	c := &Controller{
		drainer:         drainer,
		defaultPageSize: engine.DefaultPageSize,
		logger:          zerolog.Nop(),
		filter:          engine.FilterSpec{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.window = engine.PageWindow{Page: 1, Size: c.defaultPageSize}
	return c
}

// SetKind switches to kind, resets filter, sort and window, and starts a
// drain. Any drain still in flight is superseded.
func (c *Controller) SetKind(ctx context.Context, kind catalog.Kind) error {
	if !kind.Valid() {
		return catalog.ErrUnknownKind
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.kind = kind
	c.filter = engine.FilterSpec{}
	c.sort = nil
	c.window = engine.PageWindow{Page: 1, Size: c.defaultPageSize}
	c.startDrainLocked(ctx)
	c.mu.Unlock()

	c.publish()
	return nil
}

// Refresh drains the current kind again, keeping filter, sort and page size.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.kind == "":
		c.mu.Unlock()
		return ErrNoKind
	}
	c.startDrainLocked(ctx)
	c.mu.Unlock()

	c.publish()
	return nil
}

// SetFilter sets the pattern for one field and returns to page 1. An empty
// pattern removes the constraint. No drain is started.
func (c *Controller) SetFilter(field catalog.Field, pattern string) {
	c.mu.Lock()
	c.filter = c.filter.Clone()
	if pattern == "" {
		delete(c.filter, field)
	} else {
		c.filter[field] = pattern
	}
	c.window.Page = 1
	c.recomputeLocked()
	c.mu.Unlock()

	c.publish()
}

// SetFilters replaces the whole filter and returns to page 1.
func (c *Controller) SetFilters(spec engine.FilterSpec) {
	c.mu.Lock()
	c.filter = spec.Clone()
	c.window.Page = 1
	c.recomputeLocked()
	c.mu.Unlock()

	c.publish()
}

// ClearFilters removes every pattern and returns to page 1.
func (c *Controller) ClearFilters() {
	c.SetFilters(nil)
}

// SetSort orders results by field and returns to page 1.
func (c *Controller) SetSort(field catalog.Field, dir engine.Direction) {
	c.mu.Lock()
	c.sort = &engine.SortSpec{Field: field, Direction: dir}
	c.window.Page = 1
	c.recomputeLocked()
	c.mu.Unlock()

	c.publish()
}

// ClearSort restores the filtered upstream order and returns to page 1.
func (c *Controller) ClearSort() {
	c.mu.Lock()
	c.sort = nil
	c.window.Page = 1
	c.recomputeLocked()
	c.mu.Unlock()

	c.publish()
}

// SetPageSize changes the window size and returns to page 1.
func (c *Controller) SetPageSize(size int) error {
	if err := engine.ValidatePageSize(size); err != nil {
		return err
	}

	c.mu.Lock()
	c.window = engine.PageWindow{Page: 1, Size: size}
	c.recomputeLocked()
	c.mu.Unlock()

	c.publish()
	return nil
}

// SetPage moves the window by delta pages, staying within the first and the
// last non-empty page.
func (c *Controller) SetPage(delta int) {
	c.mu.Lock()
	c.window.Page += delta
	c.window = c.window.Clamp(len(c.ordered))
	c.revision++
	c.mu.Unlock()

	c.publish()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until no drain is pending and returns the resulting state.
func (c *Controller) Wait(ctx context.Context) (State, error) {
	for {
		c.mu.Lock()
		idle := c.idle
		if idle == nil {
			st := c.snapshotLocked()
			c.mu.Unlock()
			return st, nil
		}
		c.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
}

// Close supersedes any drain in flight and waits for drain goroutines to
// return. The Controller keeps its last committed state.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.version++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.loading {
		c.loading = false
		c.recomputeLocked()
	}
	c.releaseWaitersLocked()
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Controller) startDrainLocked(ctx context.Context) {
	if c.cancel != nil {
		c.cancel()
	}

	c.version++
	version := c.version
	kind := c.kind

	if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled {
		ctx = c.logger.WithContext(ctx)
	}
	drainCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	if c.idle == nil {
		c.idle = make(chan struct{})
	}
	c.loading = true
	c.err = nil
	c.collection = nil
	c.recomputeLocked()

	zerolog.Ctx(drainCtx).Debug().Ctx(drainCtx).
		Str("component", "query").
		Str("operation", "drain_start").
		Str("kind", string(kind)).
		Uint64("version", version).
		Msg("starting drain")

	c.wg.Add(1)
	go c.drain(drainCtx, version, kind)
}

func (c *Controller) drain(ctx context.Context, version uint64, kind catalog.Kind) {
	defer c.wg.Done()
	log := zerolog.Ctx(ctx)

	items, err := c.drainer.DrainItems(ctx, kind)

	c.mu.Lock()
	if version != c.version {
		current := c.version
		c.mu.Unlock()
		log.Debug().Ctx(ctx).
			Str("component", "query").
			Str("operation", "drain_commit").
			Str("kind", string(kind)).
			Uint64("version", version).
			Uint64("current_version", current).
			Msg("discarding superseded drain result")
		return
	}

	c.cancel()
	c.cancel = nil
	c.loading = false
	if err != nil {
		c.err = err
		c.collection = nil
	} else {
		c.collection = items
	}
	c.recomputeLocked()
	c.releaseWaitersLocked()
	total := len(c.ordered)
	c.mu.Unlock()

	if err != nil {
		log.Debug().Ctx(ctx).
			Str("component", "query").
			Str("operation", "drain_commit").
			Str("kind", string(kind)).
			Uint64("version", version).
			Err(err).
			Msg("drain failed")
	} else {
		log.Debug().Ctx(ctx).
			Str("component", "query").
			Str("operation", "drain_commit").
			Str("kind", string(kind)).
			Uint64("version", version).
			Int("count", len(items)).
			Int("total", total).
			Msg("drain committed")
	}

	c.publish()
}

// recomputeLocked re-runs filter and sort over the drained collection. The
// window is kept inside the result once a drain has committed.
func (c *Controller) recomputeLocked() {
	c.revision++
	if c.loading || c.err != nil {
		c.ordered = nil
		return
	}
	filtered := engine.ApplyFilter(c.collection, c.kind, c.filter)
	c.ordered = engine.ApplySort(filtered, c.sort)
	c.window = c.window.Clamp(len(c.ordered))
}

func (c *Controller) releaseWaitersLocked() {
	if c.idle != nil {
		close(c.idle)
		c.idle = nil
	}
}

func (c *Controller) snapshotLocked() State {
	total := len(c.ordered)
	st := State{
		Kind:     c.kind,
		Filter:   c.filter,
		Sort:     c.sort,
		Window:   c.window,
		Total:    total,
		Err:      c.err,
		Loading:  c.loading,
		Empty:    c.kind != "" && total == 0 && c.err == nil && !c.loading,
		Meta:     engine.NewPageMeta(c.window, total),
		Revision: c.revision,
	}
	if c.err == nil {
		st.Items = engine.Slice(c.ordered, c.window)
	}
	return st.clone()
}

func (c *Controller) publish() {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.onChange(c.State())
}

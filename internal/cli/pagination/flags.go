package pagination

import (
	"errors"
	"fmt"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
)

// Validation limits.
const (
	DefaultPage = 1
	MinPage     = 1
	MaxPageSize = 1000
)

// Common validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = errors.New("page-size must be between 1 and 1000")
)

// Params holds the query flags of a listing command.
type Params struct {
	// Filters are "field=pattern" expressions. Later expressions for the same
	// field win.
	Filters []string

	// Sort is "field" or "field:order".
	Sort string

	// Page is the 1-based page to show.
	Page int

	// PageSize is the number of items per page. Zero means the configured
	// default.
	PageSize int
}

// Query is Params resolved against a kind.
type Query struct {
	Kind   catalog.Kind
	Filter engine.FilterSpec
	Sort   *engine.SortSpec
	Window engine.PageWindow
}

// NewParams returns Params positioned on the first page.
func NewParams() *Params {
	return &Params{Page: DefaultPage}
}

// Validate checks the numeric flags (value receiver).
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// Resolve validates p and parses its expressions for kind. defaultPageSize is
// used when no --page-size was given.
func (p Params) Resolve(kind catalog.Kind, defaultPageSize int) (Query, error) {
	if err := p.Validate(); err != nil {
		return Query{}, err
	}

	filter, err := engine.ParseFilters(kind, p.Filters)
	if err != nil {
		return Query{}, err
	}

	sortSpec, err := engine.ParseSort(kind, p.Sort)
	if err != nil {
		return Query{}, fmt.Errorf("invalid --sort: %w", err)
	}

	size := p.PageSize
	if size == 0 {
		size = defaultPageSize
	}
	window, err := engine.NewPageWindow(size)
	if err != nil {
		return Query{}, err
	}
	window.Page = p.Page

	return Query{Kind: kind, Filter: filter, Sort: sortSpec, Window: window}, nil
}

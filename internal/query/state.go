package query

import (
	"slices"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
)

// State is a snapshot of a Controller. Items is always the current window of
// the current kind's drained collection under the current Filter and Sort.
type State struct {
	Kind    catalog.Kind
	Filter  engine.FilterSpec
	Sort    *engine.SortSpec
	Window  engine.PageWindow
	Items   []catalog.Item
	Total   int
	Err     error
	Empty   bool
	Loading bool
	Meta    engine.PageMeta
	// Revision increases on every published change.
	Revision uint64
}

// ErrorMessage returns the drain failure text, or "" when there is none.
func (s State) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Ready reports whether a drain has completed for the current kind.
func (s State) Ready() bool {
	return s.Kind != "" && !s.Loading
}

func (s State) clone() State {
	s.Filter = s.Filter.Clone()
	if s.Sort != nil {
		sortCopy := *s.Sort
		s.Sort = &sortCopy
	}
	s.Items = slices.Clone(s.Items)
	if s.Items == nil {
		s.Items = []catalog.Item{}
	}
	return s
}

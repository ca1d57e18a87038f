package engine

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultPageSize is the page size a fresh query starts with.
const DefaultPageSize = 20

// ErrInvalidPageSize is returned for a page size below one.
var ErrInvalidPageSize = errors.New("page size must be positive")

// PageSizeOptions returns the page sizes offered by interactive surfaces.
func PageSizeOptions() []int {
	return []int{5, 10, 20, 50}
}

// PageWindow selects one page of a sorted collection. Page is 1-based.
type PageWindow struct {
	Page int `json:"page"      yaml:"page"`
	Size int `json:"page_size" yaml:"page_size"`
}

// NewPageWindow validates size and returns the first page window.
func NewPageWindow(size int) (PageWindow, error) {
	if err := ValidatePageSize(size); err != nil {
		return PageWindow{}, err
	}
	return PageWindow{Page: 1, Size: size}, nil
}

// ValidatePageSize rejects sizes below one.
func ValidatePageSize(size int) error {
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	return nil
}

// IsOffered reports whether size is one of PageSizeOptions.
func IsOffered(size int) bool {
	return slices.Contains(PageSizeOptions(), size)
}

// TotalPages is ceil(total/size), and zero for an empty collection.
func TotalPages(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// LastPage is the highest page a window may point at. It is 1 even for an
// empty collection so page 1 always exists.
func LastPage(total, size int) int {
	return max(1, TotalPages(total, size))
}

// Clamp moves the window into [1, LastPage].
func (w PageWindow) Clamp(total int) PageWindow {
	w.Page = min(max(w.Page, 1), LastPage(total, w.Size))
	return w
}

// Offset is the index of the first item on the window's page.
func (w PageWindow) Offset() int {
	return (w.Page - 1) * w.Size
}

// Slice returns the items at positions [(page-1)*size, page*size). A window
// past the end yields an empty, non-nil slice.
func Slice[T any](items []T, w PageWindow) []T {
	if w.Size < 1 || w.Page < 1 {
		return []T{}
	}
	start := w.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+w.Size, len(items))
	return items[start:end]
}

// PageMeta describes a window over a collection.
type PageMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPageMeta computes metadata for w over total items.
func NewPageMeta(w PageWindow, total int) PageMeta {
	pages := TotalPages(total, w.Size)
	return PageMeta{
		CurrentPage: w.Page,
		PageSize:    w.Size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: w.Page > 1,
		HasNext:     w.Page < pages,
	}
}

// Range returns the 1-based first and last item numbers shown, or 0, 0 for
// an empty page.
func (m PageMeta) Range() (int, int) {
	if m.TotalItems == 0 || m.PageSize < 1 {
		return 0, 0
	}
	first := (m.CurrentPage-1)*m.PageSize + 1
	last := min(m.CurrentPage*m.PageSize, m.TotalItems)
	if first > last {
		return 0, 0
	}
	return first, last
}

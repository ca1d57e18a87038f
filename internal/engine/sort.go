package engine

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/portalgun/internal/catalog"
)

// Direction is a sort order.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// sortPartsMax is the number of parts in "field:order".
const sortPartsMax = 2

// Sort parsing errors.
var (
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
)

// SortSpec orders items by one field. A nil *SortSpec keeps filtered order.
type SortSpec struct {
	Field     catalog.Field `json:"field"     yaml:"field"`
	Direction Direction     `json:"direction" yaml:"direction"`
}

func (s *SortSpec) String() string {
	if s == nil {
		return ""
	}
	return string(s.Field) + ":" + string(s.Direction)
}

// ParseDirection accepts asc/desc and their long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// ParseSort parses "field" or "field:order" for kind. An empty string yields
// a nil spec.
func ParseSort(kind catalog.Kind, s string) (*SortSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil //nolint:nilnil // No sort is a valid result.
	}

	parts := strings.Split(s, ":")
	if len(parts) > sortPartsMax {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortFormat, s)
	}

	f, err := catalog.ParseField(kind, parts[0])
	if err != nil {
		return nil, err
	}

	dir := Ascending
	if len(parts) == sortPartsMax {
		if dir, err = ParseDirection(parts[1]); err != nil {
			return nil, err
		}
	}
	return &SortSpec{Field: f, Direction: dir}, nil
}

// ApplySort returns a stably sorted copy of items. Descending order inverts
// the comparison rather than reversing the result, so equal items keep their
// input order in both directions. A nil spec, or a field the items' kind does
// not define, returns items unchanged.
func ApplySort(items []catalog.Item, spec *SortSpec) []catalog.Item {
	if spec == nil || len(items) == 0 {
		return items
	}
	if !catalog.HasField(items[0].Kind, spec.Field) {
		return items
	}

	sorted := make([]catalog.Item, len(items))
	copy(sorted, items)

	field := spec.Field
	desc := spec.Direction == Descending
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return Compare(sorted[i], sorted[j], field) < 0
	})
	return sorted
}

// Compare orders a and b by f: numerically for counts and ids,
// chronologically for timestamps, and by byte order (case-sensitive) for text.
func Compare(a, b catalog.Item, f catalog.Field) int {
	switch catalog.TypeOf(f) {
	case catalog.NumberValue:
		na, _ := a.Number(f)
		nb, _ := b.Number(f)
		return cmp.Compare(na, nb)
	case catalog.TimeValue:
		return a.Created.Compare(b.Created)
	default:
		ta, _ := a.Text(f)
		tb, _ := b.Text(f)
		return strings.Compare(ta, tb)
	}
}

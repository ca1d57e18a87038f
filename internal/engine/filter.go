// Package engine holds the pure, in-memory stages of a catalog query:
// filtering, ordering and page slicing. Every function here works on an
// already drained collection and never fails on missing item attributes.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/portalgun/internal/catalog"
)

// MatchMode selects how a pattern is compared with a field value.
type MatchMode int

const (
	// MatchContains is a case-insensitive substring test.
	MatchContains MatchMode = iota
	// MatchExact is a case-insensitive equality test.
	MatchExact
)

// ErrInvalidFilter is returned for a filter expression that cannot be parsed
// or names a field the kind cannot be filtered on.
var ErrInvalidFilter = errors.New("invalid filter")

// filterRules lists the filterable fields of each kind and their match mode.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var filterRules = map[catalog.Kind]map[catalog.Field]MatchMode{
	catalog.Character: {
		catalog.FieldName:    MatchContains,
		catalog.FieldStatus:  MatchContains,
		catalog.FieldSpecies: MatchContains,
		catalog.FieldType:    MatchContains,
		catalog.FieldGender:  MatchExact,
	},
	catalog.Location: {
		catalog.FieldName:      MatchContains,
		catalog.FieldType:      MatchContains,
		catalog.FieldDimension: MatchContains,
	},
	catalog.Episode: {
		catalog.FieldName:    MatchContains,
		catalog.FieldEpisode: MatchContains,
	},
}

// FilterSpec maps a field to its pattern. An empty pattern places no
// constraint on that field.
type FilterSpec map[catalog.Field]string

// Clone returns an independent copy of s.
func (s FilterSpec) Clone() FilterSpec {
	out := make(FilterSpec, len(s))
	for f, p := range s {
		out[f] = p
	}
	return out
}

// Active returns the fields of s that constrain kind, in a stable order.
func (s FilterSpec) Active(kind catalog.Kind) []catalog.Field {
	rules := filterRules[kind]
	var fields []catalog.Field
	for f, pattern := range s {
		if pattern == "" {
			continue
		}
		if _, ok := rules[f]; ok {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// FilterableFields returns the fields kind can be filtered on, in display order.
func FilterableFields(kind catalog.Kind) []catalog.Field {
	rules := filterRules[kind]
	var out []catalog.Field
	for _, f := range catalog.Fields(kind) {
		if _, ok := rules[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// ModeOf returns the match mode of f for kind and whether f is filterable.
func ModeOf(kind catalog.Kind, f catalog.Field) (MatchMode, bool) {
	mode, ok := filterRules[kind][f]
	return mode, ok
}

// ApplyFilter keeps the items that satisfy every active pattern of spec for
// kind. Relative order is preserved. With no active pattern the input is
// returned unchanged.
func ApplyFilter(items []catalog.Item, kind catalog.Kind, spec FilterSpec) []catalog.Item {
	active := spec.Active(kind)
	if len(active) == 0 {
		return items
	}

	type predicate struct {
		field   catalog.Field
		mode    MatchMode
		pattern string
	}
	preds := make([]predicate, 0, len(active))
	for _, f := range active {
		preds = append(preds, predicate{
			field:   f,
			mode:    filterRules[kind][f],
			pattern: strings.ToLower(spec[f]),
		})
	}

	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		keep := true
		for _, p := range preds {
			if !matches(it, p.field, p.mode, p.pattern) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

// matches tests one lower-cased pattern. A field the item does not carry, or
// an unknown value, never matches.
func matches(it catalog.Item, f catalog.Field, mode MatchMode, pattern string) bool {
	value, ok := it.Text(f)
	if !ok || value == "" {
		return false
	}
	value = strings.ToLower(value)
	if mode == MatchExact {
		return value == pattern
	}
	return strings.Contains(value, pattern)
}

// ValidateFilter parses a "field=pattern" expression for kind.
func ValidateFilter(kind catalog.Kind, expr string) (catalog.Field, string, error) {
	name, pattern, ok := strings.Cut(expr, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q (expected field=pattern)", ErrInvalidFilter, expr)
	}
	f, err := catalog.ParseField(kind, name)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if _, filterable := filterRules[kind][f]; !filterable {
		return "", "", fmt.Errorf("%w: %s cannot be filtered on %s (filterable: %s)",
			ErrInvalidFilter, kind, f, joinFields(FilterableFields(kind)))
	}
	return f, strings.TrimSpace(pattern), nil
}

// ParseFilters validates every expression and merges them into one spec.
// Later expressions for the same field win.
func ParseFilters(kind catalog.Kind, exprs []string) (FilterSpec, error) {
	spec := FilterSpec{}
	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		f, pattern, err := ValidateFilter(kind, expr)
		if err != nil {
			return nil, err
		}
		spec[f] = pattern
	}
	return spec, nil
}

func joinFields(fields []catalog.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

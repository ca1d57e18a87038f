package pagination

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
)

// Footer describes the visible window, e.g.
// "Showing 21-40 of 826 characters (page 2 of 42)".
func Footer(kind catalog.Kind, meta engine.PageMeta) string {
	p := message.NewPrinter(language.English)
	if meta.TotalItems == 0 {
		return p.Sprintf("No %s match", kind.Plural())
	}
	first, last := meta.Range()
	return p.Sprintf("Showing %d-%d of %d %s (page %d of %d)",
		first, last, meta.TotalItems, kind.Plural(), meta.CurrentPage, meta.TotalPages)
}

// FilterHelp lists the filterable fields of every kind for flag usage text.
func FilterHelp() string {
	return describe(engine.FilterableFields)
}

// SortHelp lists the sortable fields of every kind for flag usage text.
func SortHelp() string {
	return describe(catalog.Fields)
}

func describe(fieldsOf func(catalog.Kind) []catalog.Field) string {
	lines := make([]string, 0, len(catalog.Kinds()))
	for _, k := range catalog.Kinds() {
		fields := fieldsOf(k)
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.String()
		}
		lines = append(lines, k.String()+": "+strings.Join(names, ", "))
	}
	return strings.Join(lines, "; ")
}

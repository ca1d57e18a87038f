package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
	"github.com/rshade/portalgun/internal/tui/detail"
)

// column is one cell of a list row.
type column struct {
	field catalog.Field
	width int
}

// rowColumns lists the columns drawn per kind.
//
//nolint:gochecknoglobals,mnd // Compile-time constant layout table.
var rowColumns = map[catalog.Kind][]column{
	catalog.Character: {
		{catalog.FieldID, 5}, {catalog.FieldName, 28}, {catalog.FieldStatus, 9},
		{catalog.FieldSpecies, 14}, {catalog.FieldGender, 10}, {catalog.FieldLocation, 28},
	},
	catalog.Location: {
		{catalog.FieldID, 5}, {catalog.FieldName, 30}, {catalog.FieldType, 18},
		{catalog.FieldDimension, 30}, {catalog.FieldResidents, 9},
	},
	catalog.Episode: {
		{catalog.FieldID, 5}, {catalog.FieldName, 34}, {catalog.FieldEpisode, 8},
		{catalog.FieldAirDate, 20}, {catalog.FieldCharacters, 10},
	},
}

const helpText = "1/2/3 kind  / name  f field  c clear  s sort  r reverse  n/p page  +/- size  enter detail  R refresh  q quit"

// View renders the current view.
func (m *BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderQuery())
	b.WriteString("\n")
	if m.mode != inputNone {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(helpText))
	return b.String()
}

func (m *BrowseModel) renderTabs() string {
	tabs := make([]string, 0, len(catalog.Kinds())+1)
	tabs = append(tabs, HeaderStyle.Render("portalgun"))
	for i, k := range catalog.Kinds() {
		label := fmt.Sprintf("%d %s", i+1, titleCase(k.Plural()))
		if k == m.state.Kind {
			tabs = append(tabs, ActiveTab.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *BrowseModel) renderQuery() string {
	filters := "none"
	if active := m.state.Filter.Active(m.state.Kind); len(active) > 0 {
		parts := make([]string, len(active))
		for i, f := range active {
			op := "~"
			if mode, _ := engine.ModeOf(m.state.Kind, f); mode == engine.MatchExact {
				op = "="
			}
			parts[i] = f.String() + op + m.state.Filter[f]
		}
		filters = strings.Join(parts, " ")
	}
	sortLabel := "none"
	if m.state.Sort != nil {
		sortLabel = m.state.Sort.String()
	}

	return LabelStyle.Render("Filter: ") + ValueStyle.Render(filters) +
		LabelStyle.Render("  Sort: ") + ValueStyle.Render(sortLabel) +
		LabelStyle.Render("  Page size: ") + ValueStyle.Render(fmt.Sprint(m.state.Window.Size))
}

func (m *BrowseModel) renderBody() string {
	st := m.state
	switch {
	case st.Kind == "":
		return InfoStyle.Render("Choose a kind with 1, 2 or 3.")
	case st.Loading:
		return m.spinner.View() + " " + InfoStyle.Render("Loading "+st.Kind.Plural()+"...")
	case st.Err != nil:
		return ErrorStyle.Render(st.ErrorMessage()) + "\n" + SubtleStyle.Render("Press R to retry.")
	case st.Empty:
		return InfoStyle.Render("No " + st.Kind.Plural() + " match the current filters.")
	case m.showDetail:
		if it := m.list.GetSelectedItem(); it != nil {
			return detail.Render(*it, m.width)
		}
	}
	return m.renderHeaderRow() + "\n" + m.list.View()
}

func (m *BrowseModel) renderHeaderRow() string {
	cols := rowColumns[m.state.Kind]
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = pad(strings.ToUpper(catalog.Label(c.field)), c.width)
	}
	return LabelStyle.Render(strings.Join(cells, " "))
}

// renderRow formats one item for the list.
func (m *BrowseModel) renderRow(it catalog.Item, selected bool) string {
	cols := rowColumns[it.Kind]
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = pad(it.Display(c.field), c.width)
	}
	row := strings.Join(cells, " ")
	if selected {
		return SelectedStyle.Render(row)
	}
	return row
}

func (m *BrowseModel) renderFooter() string {
	meta := m.state.Meta
	if m.state.Loading || m.state.Err != nil || meta.TotalItems == 0 {
		return SubtleStyle.Render("Page 0 of 0")
	}
	first, last := meta.Range()
	return SubtleStyle.Render(fmt.Sprintf("Page %d of %d  (%d-%d of %d %s)",
		meta.CurrentPage, meta.TotalPages, first, last, meta.TotalItems, m.state.Kind.Plural()))
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

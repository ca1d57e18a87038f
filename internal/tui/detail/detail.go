package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/portalgun/internal/catalog"
)

// Layout constants.
const (
	labelWidth    = 12
	borderPadding = 4
	minWidth      = 20
)

//nolint:gochecknoglobals // Styles are immutable after construction.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(labelWidth)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	naStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Render draws it inside a bordered box no wider than width.
func Render(it catalog.Item, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s #%d: %s", strings.ToUpper(it.Kind.String()), it.ID, displayName(it))))
	b.WriteString("\n\n")

	for _, d := range it.Details() {
		value := valueStyle.Render(d.Value)
		if d.Value == catalog.NotAvailable {
			value = naStyle.Render(d.Value)
		}
		b.WriteString(labelStyle.Render(d.Label + ":"))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	if it.Image != "" {
		b.WriteString(labelStyle.Render("Image:"))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(it.Image))
		b.WriteString("\n")
	}

	return boxStyle.Width(max(width-borderPadding, minWidth)).Render(strings.TrimRight(b.String(), "\n"))
}

func displayName(it catalog.Item) string {
	if it.Name == "" {
		return catalog.NotAvailable
	}
	return it.Name
}

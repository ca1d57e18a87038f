package tui

import "github.com/charmbracelet/lipgloss"

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable after construction.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	TabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	ActiveTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	SubtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

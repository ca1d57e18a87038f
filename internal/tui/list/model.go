package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one row. selected reports whether the row has the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel is a cursor over items that renders only visible rows.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	selected int
	// offset is the index of the first visible row.
	offset int
	height int
	width  int
}

// NewVirtualListModel returns a list of items shown in a height x width viewport.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
		width:      width,
	}
	m.scroll()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Height, msg.Width)
	}
	return m, nil
}

func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	case "pgup":
		m.SetSelected(m.selected - m.height)
	case "pgdown":
		m.SetSelected(m.selected + m.height)
	case "home":
		m.SetSelected(0)
	case "end":
		m.SetSelected(len(m.items) - 1)
	}
}

// scroll moves the viewport the least distance that keeps the cursor visible.
func (m *VirtualListModel[T]) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-m.height))
}

// View renders the visible rows.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.items))
	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// SetItems replaces the rows and resets the cursor to the first one.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.offset = 0
}

// SetSize changes the viewport.
func (m *VirtualListModel[T]) SetSize(height, width int) {
	m.height = max(height, 1)
	m.width = width
	m.scroll()
}

// SetSelected moves the cursor to index, capped to the list bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	m.selected = max(0, min(index, len(m.items)-1))
	m.scroll()
}

// ItemCount returns the number of rows.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// VisibleFrom returns the first visible index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.offset
}

// VisibleTo returns the last visible index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return min(m.offset+m.height, len(m.items))
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the row under the cursor, or nil for an empty list.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

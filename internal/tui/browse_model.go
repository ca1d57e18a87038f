// Package tui implements the interactive catalog browser.
//
// The browser is a thin view over a query.Controller: every key press maps to
// one controller mutator, and the view is always drawn from the latest
// published query.State. Drains run on the controller's goroutines and reach
// the program through a non-blocking relay.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/engine"
	"github.com/rshade/portalgun/internal/query"
	listview "github.com/rshade/portalgun/internal/tui/list"
)

// Layout defaults used until the first WindowSizeMsg.
const (
	defaultWidth  = 120
	defaultHeight = 30
	// chromeHeight is the number of lines around the item list: tabs, query
	// line, column header, footer, status and help.
	chromeHeight = 8
	minHeight    = 3

	filterInputCharLimit = 64
	filterInputWidth     = 40
)

// inputMode is what the text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputName
	inputField
)

// ControllerFactory builds the controller the browser drives. onChange must be
// installed with query.WithOnChange.
type ControllerFactory func(onChange func(query.State)) (*query.Controller, error)

// Run starts the browser on kind and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, kind catalog.Kind, newController ControllerFactory) error {
	r := newRelay()
	ctrl, err := newController(r.Publish)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	p := tea.NewProgram(NewBrowseModel(ctx, ctrl, kind), tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.forward(p.Send, done)
	}()

	_, err = p.Run()
	close(done)
	wg.Wait()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

// BrowseModel is the Bubble Tea model of the catalog browser.
type BrowseModel struct {
	ctx         context.Context
	ctrl        *query.Controller
	initialKind catalog.Kind

	state   query.State
	list    *listview.VirtualListModel[catalog.Item]
	input   textinput.Model
	mode    inputMode
	spinner spinner.Model

	showDetail bool
	status     string
	width      int
	height     int
	quitting   bool
}

// NewBrowseModel returns a browser over ctrl that opens kind on Init.
func NewBrowseModel(ctx context.Context, ctrl *query.Controller, kind catalog.Kind) *BrowseModel {
	ti := textinput.New()
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	m := &BrowseModel{
		ctx:         ctx,
		ctrl:        ctrl,
		initialKind: kind,
		input:       ti,
		spinner:     sp,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.list = listview.NewVirtualListModel[catalog.Item](nil, m.listHeight(), m.width, m.renderRow)
	return m
}

// Init selects the initial kind, which starts its drain.
func (m *BrowseModel) Init() tea.Cmd {
	return m.switchKind(m.initialKind)
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listHeight(), m.width)
		return m, nil
	case stateMsg:
		return m, m.apply(msg.state)
	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch {
		case m.mode != inputNone:
			return m, m.handleInput(msg)
		case m.showDetail:
			return m, m.handleDetailKey(msg)
		default:
			return m, m.handleListKey(msg)
		}
	}
	return m, nil
}

// apply adopts st unless the model already shows a newer state. It returns a
// spinner tick when a drain has just started.
func (m *BrowseModel) apply(st query.State) tea.Cmd {
	if st.Revision < m.state.Revision {
		return nil
	}
	wasLoading := m.state.Loading
	changed := st.Revision != m.state.Revision || st.Kind != m.state.Kind
	m.state = st
	if changed {
		m.list.SetItems(st.Items)
		m.showDetail = m.showDetail && len(st.Items) > 0
	}
	if st.Loading && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

// sync adopts the controller's current state after a synchronous mutator.
func (m *BrowseModel) sync() tea.Cmd {
	return m.apply(m.ctrl.State())
}

func (m *BrowseModel) switchKind(kind catalog.Kind) tea.Cmd {
	if err := m.ctrl.SetKind(m.ctx, kind); err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = ""
	m.showDetail = false
	return m.sync()
}

func (m *BrowseModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return tea.Quit
	case keyCharacter:
		return m.switchKind(catalog.Character)
	case keyLocation:
		return m.switchKind(catalog.Location)
	case keyEpisode:
		return m.switchKind(catalog.Episode)
	case keySlash:
		return m.openInput(inputName, "name contains...", m.state.Filter[catalog.FieldName])
	case keyField:
		return m.openInput(inputField, "field=pattern", "")
	case keyClear:
		m.ctrl.ClearFilters()
	case keySort:
		m.cycleSort()
	case keyReverse:
		if s := m.state.Sort; s != nil {
			m.ctrl.SetSort(s.Field, opposite(s.Direction))
		}
	case keyNext, keyRight:
		m.ctrl.SetPage(1)
	case keyPrev, keyLeft:
		m.ctrl.SetPage(-1)
	case keyGrow:
		m.resizePage(true)
	case keyShrink:
		m.resizePage(false)
	case keyRefresh:
		if err := m.ctrl.Refresh(m.ctx); err != nil {
			m.status = err.Error()
		}
	case keyEnter:
		if m.list.GetSelectedItem() != nil {
			m.showDetail = true
		}
		return nil
	default:
		m.list.Update(msg)
		return nil
	}
	return m.sync()
}

func (m *BrowseModel) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.quitting = true
		return tea.Quit
	case keyEsc, keyEnter:
		m.showDetail = false
	}
	return nil
}

func (m *BrowseModel) openInput(mode inputMode, placeholder, value string) tea.Cmd {
	if m.state.Kind == "" {
		return nil
	}
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *BrowseModel) handleInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case keyEsc:
		m.closeInput()
		return nil
	case keyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		if mode == inputName {
			m.ctrl.SetFilter(catalog.FieldName, value)
			return m.sync()
		}
		field, pattern, err := engine.ValidateFilter(m.state.Kind, value)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.ctrl.SetFilter(field, pattern)
		return m.sync()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *BrowseModel) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

// cycleSort steps through the kind's fields in display order, then back to
// upstream order.
func (m *BrowseModel) cycleSort() {
	fields := catalog.Fields(m.state.Kind)
	if len(fields) == 0 {
		return
	}
	current := m.state.Sort
	if current == nil {
		m.ctrl.SetSort(fields[0], engine.Ascending)
		return
	}
	next := slices.Index(fields, current.Field) + 1
	if next >= len(fields) {
		m.ctrl.ClearSort()
		return
	}
	m.ctrl.SetSort(fields[next], current.Direction)
}

// resizePage moves to the next larger or smaller offered page size.
func (m *BrowseModel) resizePage(grow bool) {
	size := m.state.Window.Size
	options := engine.PageSizeOptions()
	if !grow {
		slices.Reverse(options)
	}
	for _, opt := range options {
		if (grow && opt > size) || (!grow && opt < size) {
			_ = m.ctrl.SetPageSize(opt)
			return
		}
	}
}

func opposite(d engine.Direction) engine.Direction {
	if d == engine.Descending {
		return engine.Ascending
	}
	return engine.Descending
}

func (m *BrowseModel) listHeight() int {
	return max(m.height-chromeHeight, minHeight)
}

// State returns the state the model is currently showing.
func (m *BrowseModel) State() query.State {
	return m.state
}

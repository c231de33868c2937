package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchselect/internal/config"
	"searchselect/internal/domain"
	"searchselect/internal/eventbus"
	"searchselect/internal/fetch"
	"searchselect/internal/selector"
	"searchselect/internal/ui/views"
)

// Rows scrolled per mouse wheel notch
const wheelRows = 3

// Model is the demo application: one select box over the candidate
// directory plus a panel showing the committed candidate.
type Model struct {
	bus eventbus.EventBus

	sel   *selector.Controller[domain.Candidate, string]
	value *domain.Candidate // owner state when the select box is controlled

	input    textinput.Model
	help     help.Model
	keys     keyMap
	renderer *views.Renderer
	helpPage *HelpRenderer
	helpOps  *HelpOps

	width       int
	height      int
	inPagerMode bool

	// Last generations and selection reported on the bus
	issued        uint64
	settled       uint64
	lastSelection string

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the UI model. initial is the restored selection; it is
// only honoured in controlled mode, where the model owns the value.
func NewModel(bus eventbus.EventBus, cfg *config.Config, provider fetch.Provider[domain.Candidate], initial *domain.Candidate) *Model {
	acc := selector.Accessors[domain.Candidate, string]{
		Label: domain.CandidateLabel,
		Value: domain.CandidateValue,
	}

	m := &Model{
		bus:      bus,
		help:     help.New(),
		keys:     defaultKeyMap(),
		renderer: views.NewRenderer(),
		helpOps:  NewHelpOps(nil),
	}
	m.helpPage = NewHelpRenderer(m.keys)

	if cfg.UI.Controlled {
		m.value = initial
		if initial != nil {
			m.lastSelection = initial.Value
		}
		m.sel = selector.NewControlled(provider, acc, cfg.SelectorConfig(), initial, func(c domain.Candidate) tea.Cmd {
			return func() tea.Msg { return selectionRequestedMsg{candidate: c} }
		})
	} else {
		m.sel = selector.New(provider, acc, cfg.SelectorConfig())
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = m.sel.Config().Texts.Placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(m.sel.Text())
	m.input = ti

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Selector exposes the select box state machine
func (m *Model) Selector() *selector.Controller[domain.Candidate, string] {
	return m.sel
}

// Init issues the first search and focuses the input
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.after(m.sel.Init()), m.setFocus(true))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = views.ContentWidth(msg.Width) - 5
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case selectionRequestedMsg:
		// Owner side of the controlled select box: accept every request
		c := msg.candidate
		m.value = &c
		cmd, err := m.sel.SetValue(m.value)
		if err != nil {
			log.Printf("SetValue failed: %v", err)
		}
		return m, m.after(cmd)

	case helpPagerMsg:
		if msg.err != nil {
			// Fall back to the inline help
			log.Printf("Help pager failed: %v", msg.err)
			m.help.ShowAll = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	return m, m.send(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sel.Dispose()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(!m.input.Focused())
	}

	if !m.input.Focused() {
		return nil
	}

	st := m.sel.State()
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.send(selector.ArrowUpMsg{})
	case key.Matches(msg, m.keys.Down):
		return m.send(selector.ArrowDownMsg{})
	case key.Matches(msg, m.keys.PageUp):
		return m.send(selector.ScrollMsg{Offset: st.ScrollOffset - st.ViewportHeight})
	case key.Matches(msg, m.keys.PageDown):
		return m.send(selector.ScrollMsg{Offset: st.ScrollOffset + st.ViewportHeight})
	case key.Matches(msg, m.keys.Select):
		return m.send(selector.EnterMsg{})
	case key.Matches(msg, m.keys.Cancel):
		return m.send(selector.EscapeMsg{})
	case key.Matches(msg, m.keys.Refresh):
		return m.send(selector.RefreshMsg{})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != before {
		return tea.Batch(cmd, m.send(selector.TypeMsg{Text: text}))
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	st := m.sel.State()
	step := wheelRows * m.sel.Config().ItemHeight
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if st.Open {
			return m.send(selector.ScrollMsg{Offset: st.ScrollOffset - step})
		}
	case tea.MouseButtonWheelDown:
		if st.Open {
			return m.send(selector.ScrollMsg{Offset: st.ScrollOffset + step})
		}
	case tea.MouseButtonLeft:
		if i, ok := m.rowAt(msg.Y); ok {
			return m.send(selector.PointerSelectMsg{Index: i})
		}
		if msg.Y >= views.InputTop && msg.Y <= views.InputBottom && !m.input.Focused() {
			return m.setFocus(true)
		}
	}
	return nil
}

// rowAt maps a screen line to an option index
func (m *Model) rowAt(y int) (int, bool) {
	st := m.sel.State()
	if !st.Open || m.sel.StatusText() != "" {
		return 0, false
	}
	first, last := visibleRange(st)
	i := first + y - views.ListTop
	if y < views.ListTop || i > last {
		return 0, false
	}
	return i, true
}

// visibleRange is the inclusive range of rows drawn, one line per row.
// last < first when there is nothing to draw.
func visibleRange(st selector.State[domain.Candidate]) (int, int) {
	first := st.FirstVisible
	last := min(first+st.VisibleRows, len(st.Snapshot.Options)) - 1
	return first, last
}

func (m *Model) setFocus(on bool) tea.Cmd {
	if m.sel.Config().Disabled {
		return nil
	}
	if on {
		return tea.Batch(m.input.Focus(), m.send(selector.FocusMsg{}))
	}
	m.input.Blur()
	return m.send(selector.BlurMsg{})
}

func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	content := m.helpPage.RenderHelpContent()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// send forwards msg to the select box
func (m *Model) send(msg tea.Msg) tea.Cmd {
	return m.after(m.sel.Update(msg))
}

// after brings the input and the bus in line with the select box state
func (m *Model) after(cmd tea.Cmd) tea.Cmd {
	st := m.sel.State()
	if m.input.Value() != st.Text {
		m.input.SetValue(st.Text)
		m.input.CursorEnd()
	}
	m.reportFetch(st)
	m.reportSelection(st.Selection)
	return cmd
}

func (m *Model) reportFetch(st selector.State[domain.Candidate]) {
	if st.Generation > m.issued {
		m.issued = st.Generation
		m.publish(eventbus.FetchIssuedEvent{Query: st.FetchQuery, Generation: st.Generation})
	}
	if st.Snapshot.Loading || st.Generation <= m.settled {
		return
	}
	m.settled = st.Generation
	if st.Snapshot.Failed() {
		log.Printf("Search %q failed: %s", st.FetchQuery, st.Snapshot.Error)
		m.publish(eventbus.FetchFailedEvent{Query: st.FetchQuery, Generation: st.Generation, Message: st.Snapshot.Error})
		return
	}
	m.publish(eventbus.FetchSettledEvent{Query: st.FetchQuery, Generation: st.Generation, Count: len(st.Snapshot.Options)})
}

func (m *Model) reportSelection(sel *domain.Candidate) {
	if sel == nil || sel.Value == m.lastSelection {
		return
	}
	m.lastSelection = sel.Value
	log.Printf("Selected %s (%s)", sel.Value, sel.Label)
	m.publish(eventbus.SelectionChangedEvent{Candidate: *sel})
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	st := m.sel.State()
	vs := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Input:      m.input.View(),
		Focused:    m.input.Focused(),
		Disabled:   st.Disabled,
		Open:       st.Open,
		Selection:  st.Selection,
		Controlled: st.Controlled,
		HelpView:   m.help.View(m.keys),
	}

	opts := st.Snapshot.Options
	vs.Status = m.sel.StatusText()
	switch {
	case st.Snapshot.Loading:
		vs.StatusKind = views.StatusLoading
	case st.Snapshot.Failed():
		vs.StatusKind = views.StatusError
		vs.Detail = st.Snapshot.Error
	case len(opts) == 0:
		vs.StatusKind = views.StatusEmpty
	}

	first, last := visibleRange(st)
	if vs.StatusKind == views.StatusNone {
		for i := first; i <= last; i++ {
			vs.Rows = append(vs.Rows, views.Row{
				Index:       i,
				Label:       opts[i].Label,
				Email:       opts[i].Email,
				Highlighted: i == st.Highlighted,
				Selected:    m.sel.IsSelected(opts[i]),
			})
		}
		vs.MoreAbove = first > 0
		vs.MoreBelow = last < len(opts)-1
	}

	if st.Open && len(opts) > 0 {
		vs.Counter = fmt.Sprintf("%d results · rows %d-%d · window %d-%d · generation %d",
			len(opts), first+1, last+1, st.Window.Start, st.Window.End, st.Generation)
	} else {
		vs.Counter = fmt.Sprintf("generation %d", st.Generation)
	}
	return vs
}

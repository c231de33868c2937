package ui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchselect/internal/candidates"
	"searchselect/internal/config"
	"searchselect/internal/domain"
	"searchselect/internal/eventbus"
	"searchselect/internal/ui/views"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func testConfig(controlled bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Selector.DebounceIntervalMs = 1
	cfg.Selector.BlurGraceMs = 1
	cfg.Provider.LatencyMs = 0
	cfg.UI.Controlled = controlled
	return cfg
}

func directory() *candidates.Directory {
	return candidates.NewDirectory(candidates.Options{Count: 1000, Limit: 300, FailureKeyword: "error"})
}

func newTestModel(t *testing.T, bus eventbus.EventBus, cfg *config.Config, initial *domain.Candidate) *Model {
	t.Helper()
	m := NewModel(bus, cfg, directory(), initial)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(t, m, m.Init())
	return m
}

// drain runs cmd and feeds every resulting message back into m.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		_, c := m.Update(msg)
		queue = append(queue, c)
	}
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drain(t, m, cmd)
}

func typeRunes(t *testing.T, m *Model, s string) {
	press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func screen(m *Model) string {
	return ansiRe.ReplaceAllString(m.View(), "")
}

func TestInitialSearchOpensFocusedList(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)

	st := m.Selector().State()
	assert.True(t, st.Open)
	assert.True(t, st.Focused)
	assert.Len(t, st.Snapshot.Options, 300)
	assert.Equal(t, 0, st.Highlighted)

	out := screen(m)
	assert.Contains(t, out, "> Candidate #0 - ")
	assert.Contains(t, out, "more below")
	assert.Contains(t, out, "300 results · rows 1-8")
	assert.Contains(t, out, "Nothing selected")
}

func TestTypeNavigateAndSelect(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)

	typeRunes(t, m, "Candidate #12")
	st := m.Selector().State()
	require.Equal(t, "Candidate #12", st.Query)
	require.Len(t, st.Snapshot.Options, 11)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selector().Selection()
	require.NotNil(t, sel)
	assert.Equal(t, "cand-0120", sel.Value)
	assert.Equal(t, sel.Label, m.input.Value())
	assert.False(t, m.Selector().Open())
	assert.Contains(t, screen(m), "user120@example.com")
}

func TestEscapeRestoresInput(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)
	typeRunes(t, m, "Candidate #7 ")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	label := m.Selector().Selection().Label

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	typeRunes(t, m, "zz")
	require.Equal(t, label+"zz", m.input.Value())

	press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, label, m.input.Value())
	assert.False(t, m.Selector().Open())
}

func TestErrorIsShownAndRecovers(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)

	typeRunes(t, m, "error")
	out := screen(m)
	assert.Contains(t, out, "Error occurred")
	assert.Contains(t, out, "mocked failure")

	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	typeRunes(t, m, "zzz")
	assert.Contains(t, screen(m), "No results")

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, screen(m), "> Candidate #0 - ")
}

func TestMouseSelectAndScroll(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)
	typeRunes(t, m, "Candidate #12")

	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	_, cmd := m.Update(wheel)
	drain(t, m, cmd)
	assert.Equal(t, 3*40, m.Selector().State().ScrollOffset)

	_, cmd = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	drain(t, m, cmd)
	require.Equal(t, 0, m.Selector().State().ScrollOffset)

	click := tea.MouseMsg{X: 10, Y: views.ListTop + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	_, cmd = m.Update(click)
	drain(t, m, cmd)

	sel := m.Selector().Selection()
	require.NotNil(t, sel)
	assert.Equal(t, "cand-0121", sel.Value)

	// The list is closed now, so the same spot selects nothing.
	_, cmd = m.Update(click)
	assert.Nil(t, cmd)
}

func TestTabBlursAndRefocuses(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.input.Focused())
	assert.False(t, m.Selector().Open(), "the list closes once the grace period ends")

	typeRunes(t, m, "ignored")
	assert.Equal(t, "", m.input.Value())

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.input.Focused())
	assert.True(t, m.Selector().Open())
}

func TestControlledOwnerFeedsSelectionBack(t *testing.T) {
	dir := directory()
	initial, ok := dir.ByValue("cand-0005")
	require.True(t, ok)

	m := newTestModel(t, nil, testConfig(true), &initial)
	assert.True(t, m.Selector().Controlled())
	assert.Equal(t, initial.Label, m.input.Value())
	assert.Contains(t, screen(m), "(controlled)")

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	typeRunes(t, m, "user33@")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.value)
	assert.Equal(t, "cand-0033", m.value.Value)
	assert.Equal(t, "cand-0033", m.Selector().Selection().Value)
	assert.Contains(t, m.input.Value(), "Candidate #33 ")
}

func TestEventsArePublished(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	selected := make(chan domain.Candidate, 1)
	failed := make(chan string, 1)
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		selected <- e.(eventbus.SelectionChangedEvent).Candidate
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		failed <- e.(eventbus.FetchFailedEvent).Query
	})

	m := newTestModel(t, bus, testConfig(false), nil)
	typeRunes(t, m, "error")

	select {
	case q := <-failed:
		assert.Equal(t, "error", q)
	case <-time.After(time.Second):
		t.Fatal("no FetchFailed event")
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case c := <-selected:
		assert.Equal(t, "cand-0000", c.Value)
	case <-time.After(time.Second):
		t.Fatal("no SelectionChanged event")
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	cfg := testConfig(false)
	cfg.Selector.Disabled = true
	m := newTestModel(t, nil, cfg, nil)

	typeRunes(t, m, "abc")
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.False(t, m.input.Focused())
	assert.Equal(t, "", m.input.Value())
	assert.False(t, m.Selector().Open())
}

func TestHelpWithoutProgramTogglesInlineHelp(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)
	require.False(t, m.help.ShowAll)

	press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, screen(m), "search again")

	content := m.helpPage.RenderHelpContent()
	assert.Contains(t, ansiRe.ReplaceAllString(content, ""), "close and discard edits")
}

func TestQuitDisposesSelector(t *testing.T) {
	m := newTestModel(t, nil, testConfig(false), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.True(t, strings.Contains(screen(m), "generation"))
}

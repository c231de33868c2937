// Package selector is the state machine behind a search-as-you-type select
// box. It composes a debounced query, a generation-guarded async fetch and a
// windowed viewport, and resolves keyboard and pointer intents into
// open/highlight/selection state. Side effects are returned as tea.Cmd values.
package selector

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"searchselect/internal/debounce"
	"searchselect/internal/fetch"
	"searchselect/internal/window"
)

// ErrNotControlled is returned by SetValue on an uncontrolled controller.
var ErrNotControlled = errors.New("selector: SetValue called on an uncontrolled controller")

// Accessors derive the display label and the identity of an option.
type Accessors[T any, K comparable] struct {
	Label func(T) string
	Value func(T) K
}

// Controller is one select box instance. It is not safe for concurrent use;
// drive it from a single Bubble Tea Update loop.
type Controller[T any, K comparable] struct {
	id  string
	cfg Config
	acc Accessors[T, K]

	// Ownership is fixed at construction.
	controlled bool
	onChange   func(T) tea.Cmd
	external   *T
	internal   *T

	open        bool
	focused     bool
	text        string
	highlighted int

	query    *debounce.Holder[string]
	fetcher  *fetch.Controller[T]
	viewport *window.Viewport

	blurTag  int
	disposed bool
}

// New creates an uncontrolled controller that owns its selection.
func New[T any, K comparable](p fetch.Provider[T], acc Accessors[T, K], cfg Config) *Controller[T, K] {
	cfg = cfg.withDefaults()
	return &Controller[T, K]{
		id:          uuid.NewString(),
		cfg:         cfg,
		acc:         acc,
		highlighted: -1,
		query:       debounce.New(cfg.DebounceInterval, ""),
		fetcher:     fetch.NewController(p),
		viewport:    window.NewViewport(cfg.ItemHeight, cfg.MaxVisibleItems, cfg.OverscanCount),
	}
}

// NewControlled creates a controller whose selection is owned by the caller.
// Commits are reported through onChange and only become visible once the
// owner feeds them back with SetValue.
func NewControlled[T any, K comparable](p fetch.Provider[T], acc Accessors[T, K], cfg Config, value *T, onChange func(T) tea.Cmd) *Controller[T, K] {
	c := New(p, acc, cfg)
	c.controlled = true
	c.onChange = onChange
	c.external = value
	c.syncText()
	c.query = debounce.New(c.cfg.DebounceInterval, c.text)
	return c
}

// ID identifies the instance.
func (c *Controller[T, K]) ID() string { return c.id }

// Config returns the effective configuration.
func (c *Controller[T, K]) Config() Config { return c.cfg }

// Controlled reports whether the selection is owned by the caller.
func (c *Controller[T, K]) Controlled() bool { return c.controlled }

// Init issues the initial lookup for the current query.
func (c *Controller[T, K]) Init() tea.Cmd {
	if c.disposed {
		return nil
	}
	return c.fetcher.Observe(c.query.Value())
}

// Selection returns the committed option, or nil.
func (c *Controller[T, K]) Selection() *T {
	if c.controlled {
		return c.external
	}
	return c.internal
}

// SetValue feeds the owner's value into a controlled controller.
func (c *Controller[T, K]) SetValue(v *T) (tea.Cmd, error) {
	if !c.controlled {
		return nil, ErrNotControlled
	}
	if c.disposed {
		return nil, nil
	}
	c.external = v
	if c.open {
		c.resolveHighlight()
		return nil, nil
	}
	c.syncText()
	return c.query.Observe(c.text), nil
}

// IsSelected reports whether opt has the identity of the selection.
func (c *Controller[T, K]) IsSelected(opt T) bool {
	sel := c.Selection()
	return sel != nil && c.acc.Value(*sel) == c.acc.Value(opt)
}

// Label returns the display label of opt.
func (c *Controller[T, K]) Label(opt T) string { return c.acc.Label(opt) }

// ScrollToIndex scrolls the list so that index is placed per align.
func (c *Controller[T, K]) ScrollToIndex(index int, align window.Align) int {
	return c.viewport.ScrollToIndex(index, align)
}

// Dispose stops the debounce timer and makes in-flight lookups and pending
// blur timers no-ops.
func (c *Controller[T, K]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.blurTag++
	c.query.Stop()
	c.fetcher.Dispose()
}

// Update handles intents and the controller's own timer and fetch messages.
func (c *Controller[T, K]) Update(msg tea.Msg) tea.Cmd {
	if c.disposed {
		return nil
	}

	switch msg := msg.(type) {
	case debounce.SettledMsg[string]:
		if q, changed := c.query.Update(msg); changed {
			return c.fetcher.Observe(q)
		}
		return nil

	case fetch.ResultMsg[T]:
		if c.fetcher.Update(msg) {
			c.optionsChanged()
		}
		return nil

	case blurElapsedMsg:
		if msg.id != c.id || msg.tag != c.blurTag || c.focused || !c.open {
			return nil
		}
		return c.close()

	case Intent:
		if c.cfg.Disabled {
			return nil
		}
		return c.handleIntent(msg)
	}
	return nil
}

func (c *Controller[T, K]) handleIntent(msg Intent) tea.Cmd {
	switch msg := msg.(type) {
	case FocusMsg:
		c.focused = true
		c.blurTag++
		c.openList()
		return nil

	case BlurMsg:
		c.focused = false
		c.blurTag++
		id, tag := c.id, c.blurTag
		return tea.Tick(c.cfg.BlurGrace, func(time.Time) tea.Msg {
			return blurElapsedMsg{id: id, tag: tag}
		})

	case TypeMsg:
		c.text = msg.Text
		if !c.open {
			c.openList()
		}
		return c.query.Observe(msg.Text)

	case ArrowDownMsg:
		if !c.open {
			c.openList()
			return nil
		}
		n := c.optionCount()
		if n == 0 {
			c.setHighlight(-1)
			return nil
		}
		if c.highlighted < 0 {
			c.setHighlight(0)
		} else {
			c.setHighlight(min(n-1, c.highlighted+1))
		}
		return nil

	case ArrowUpMsg:
		if !c.open {
			return nil
		}
		n := c.optionCount()
		if n == 0 {
			c.setHighlight(-1)
			return nil
		}
		if c.highlighted < 0 {
			c.setHighlight(0)
		} else {
			c.setHighlight(max(0, min(n-1, c.highlighted-1)))
		}
		return nil

	case EnterMsg:
		if !c.open {
			return nil
		}
		i := c.Highlighted()
		if i < 0 {
			return nil
		}
		return c.commit(c.fetcher.Snapshot().Options[i])

	case EscapeMsg:
		if !c.open {
			return nil
		}
		c.blurTag++
		return c.close()

	case PointerSelectMsg:
		opts := c.fetcher.Snapshot().Options
		if !c.open || msg.Index < 0 || msg.Index >= len(opts) {
			return nil
		}
		return c.commit(opts[msg.Index])

	case ScrollMsg:
		c.viewport.SetOffset(msg.Offset)
		return nil

	case RefreshMsg:
		q, _ := c.query.Flush()
		return c.fetcher.Fetch(q)
	}
	return nil
}

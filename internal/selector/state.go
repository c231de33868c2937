package selector

import (
	"searchselect/internal/fetch"
	"searchselect/internal/window"
)

// State is everything a presentation layer needs to draw the select box.
type State[T any] struct {
	ID         string
	Open       bool
	Focused    bool
	Disabled   bool
	Controlled bool

	// Text is the content of the input; Query is its debounced value.
	Text  string
	Query string

	Highlighted int
	Snapshot    fetch.Snapshot[T]
	Selection   *T
	Generation  uint64
	FetchQuery  string // query of the newest issued fetch

	Window         window.Window
	ScrollOffset   int
	ViewportHeight int
	FirstVisible   int
	VisibleRows    int
}

// Highlighted returns the highlighted index validated against the current
// options, or -1.
func (c *Controller[T, K]) Highlighted() int {
	n := c.optionCount()
	if c.highlighted < 0 || n == 0 {
		return -1
	}
	return min(c.highlighted, n-1)
}

// Open reports whether the option list is shown.
func (c *Controller[T, K]) Open() bool { return c.open }

// Text is the current input text.
func (c *Controller[T, K]) Text() string { return c.text }

// State snapshots the controller for rendering.
func (c *Controller[T, K]) State() State[T] {
	return State[T]{
		ID:             c.id,
		Open:           c.open,
		Focused:        c.focused,
		Disabled:       c.cfg.Disabled,
		Controlled:     c.controlled,
		Text:           c.text,
		Query:          c.query.Value(),
		Highlighted:    c.Highlighted(),
		Snapshot:       c.fetcher.Snapshot(),
		Selection:      c.Selection(),
		Generation:     c.fetcher.Generation(),
		FetchQuery:     c.fetcher.Query(),
		Window:         c.viewport.Window(),
		ScrollOffset:   c.viewport.Offset(),
		ViewportHeight: c.viewport.Height(),
		FirstVisible:   c.viewport.FirstVisible(),
		VisibleRows:    c.viewport.VisibleRows(),
	}
}

// StatusText is the configured text to show instead of the list, or "" when
// options should be listed.
func (c *Controller[T, K]) StatusText() string {
	snap := c.fetcher.Snapshot()
	switch {
	case snap.Loading:
		return c.cfg.Texts.Loading
	case snap.Failed():
		return c.cfg.Texts.Error
	case len(snap.Options) == 0:
		return c.cfg.Texts.NoResults
	}
	return ""
}

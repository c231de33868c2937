package selector

import (
	tea "github.com/charmbracelet/bubbletea"

	"searchselect/internal/window"
)

func (c *Controller[T, K]) optionCount() int {
	return len(c.fetcher.Snapshot().Options)
}

func (c *Controller[T, K]) firstIndex() int {
	if c.optionCount() == 0 {
		return -1
	}
	return 0
}

// selectionIndex is the position of the selection among the current
// options, or -1 when it is absent.
func (c *Controller[T, K]) selectionIndex() int {
	sel := c.Selection()
	if sel == nil {
		return -1
	}
	want := c.acc.Value(*sel)
	for i, opt := range c.fetcher.Snapshot().Options {
		if c.acc.Value(opt) == want {
			return i
		}
	}
	return -1
}

// resolveHighlight points at the selection if it is listed, else at the
// first option, else nowhere.
func (c *Controller[T, K]) resolveHighlight() {
	if i := c.selectionIndex(); i >= 0 {
		c.setHighlight(i)
		return
	}
	c.setHighlight(c.firstIndex())
}

func (c *Controller[T, K]) setHighlight(i int) {
	c.highlighted = i
	if c.open && i >= 0 {
		c.viewport.ScrollToIndex(i, window.AlignCenter)
	}
}

func (c *Controller[T, K]) openList() {
	c.open = true
	c.resolveHighlight()
}

func (c *Controller[T, K]) optionsChanged() {
	c.viewport.SetItemCount(c.optionCount())
	if c.open {
		c.resolveHighlight()
	}
}

// syncText resets the input text to the selection's label, or clears it.
func (c *Controller[T, K]) syncText() {
	if sel := c.Selection(); sel != nil {
		c.text = c.acc.Label(*sel)
		return
	}
	c.text = ""
}

func (c *Controller[T, K]) close() tea.Cmd {
	c.open = false
	c.syncText()
	return c.query.Observe(c.text)
}

// commit selects opt, or asks the owner to in controlled mode. The text
// always follows Selection, so a request the owner ignores shows nothing.
func (c *Controller[T, K]) commit(opt T) tea.Cmd {
	var notify tea.Cmd
	if c.controlled {
		if c.onChange != nil {
			notify = c.onChange(opt)
		}
	} else {
		selected := opt
		c.internal = &selected
	}

	c.blurTag++
	c.open = false
	c.syncText()
	return tea.Batch(notify, c.query.Observe(c.text))
}

package views

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Row is one visible option of the dropdown
type Row struct {
	Index       int
	Label       string
	Email       string
	Highlighted bool
	Selected    bool
}

// DropdownRenderer handles rendering of the option list
type DropdownRenderer struct {
	styles *Styles
}

// NewDropdownRenderer creates a new dropdown renderer
func NewDropdownRenderer(styles *Styles) *DropdownRenderer {
	return &DropdownRenderer{styles: styles}
}

// RenderRow renders a single option truncated to width cells
func (d *DropdownRenderer) RenderRow(row Row, width int) string {
	marker := "  "
	if row.Selected {
		marker = "✓ "
	}
	if row.Highlighted {
		marker = "> "
	}

	label := row.Label
	email := ""
	if row.Email != "" {
		email = "  " + row.Email
	}

	avail := max(width-runewidth.StringWidth(marker), 1)
	if runewidth.StringWidth(label) >= avail {
		label = runewidth.Truncate(label, avail, "…")
		email = ""
	} else if runewidth.StringWidth(label+email) > avail {
		email = runewidth.Truncate(email, avail-runewidth.StringWidth(label), "…")
	}

	labelStyle := d.styles.Row
	switch {
	case row.Highlighted:
		labelStyle = d.styles.Highlight
	case row.Selected:
		labelStyle = d.styles.Selected
	}

	line := marker + labelStyle.Render(label) + d.styles.RowEmail.Render(email)
	if row.Highlighted {
		// Pad so the background covers the whole row
		if pad := width - runewidth.StringWidth(marker+label+email); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return d.styles.HighlightBg.Render(line)
	}
	return line
}

// RenderList renders the visible rows with scroll indicators above and below.
// The indicator lines are always present so rows keep a fixed position.
func (d *DropdownRenderer) RenderList(rows []Row, moreAbove, moreBelow bool, width int) string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, d.indicator("↑ more above", moreAbove))
	for _, row := range rows {
		lines = append(lines, d.RenderRow(row, width))
	}
	lines = append(lines, d.indicator("↓ more below", moreBelow))
	return strings.Join(lines, "\n")
}

func (d *DropdownRenderer) indicator(text string, show bool) string {
	if !show {
		return ""
	}
	return d.styles.Scroll.Render(text)
}

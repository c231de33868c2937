package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"searchselect/internal/domain"
)

// Screen coordinates: main padding, title with its margin, the bordered
// input and the upper scroll indicator come before the first dropdown row.
const (
	InputTop    = 3
	InputBottom = InputTop + 2
	ListTop     = InputBottom + 2
	ListLeft    = 2
)

// StatusKind selects the style of the status row shown instead of options
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusLoading
	StatusError
	StatusEmpty
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width    int
	Height   int
	Input    string // rendered text input
	Focused  bool
	Disabled bool

	Open       bool
	Rows       []Row
	MoreAbove  bool
	MoreBelow  bool
	Status     string
	StatusKind StatusKind
	Detail     string // raw error from the provider, shown next to the status

	Selection  *domain.Candidate
	Controlled bool
	Counter    string
	HelpView   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	dropdown *DropdownRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		dropdown: NewDropdownRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// ContentWidth is the usable width inside the main container
func ContentWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = 80
	}
	return max(termWidth-2*ListLeft, 10)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := ContentWidth(state.Width)
	content := &strings.Builder{}

	title := "searchselect"
	if state.Controlled {
		title += " (controlled)"
	}
	content.WriteString(r.styles.Title.Render(title))
	content.WriteString("\n")

	inputStyle := r.styles.Input
	switch {
	case state.Disabled:
		inputStyle = r.styles.InputDisabled
	case state.Focused:
		inputStyle = r.styles.InputFocused
	}
	content.WriteString(inputStyle.Width(width - 2).Render(state.Input))
	content.WriteString("\n")

	if state.Open {
		content.WriteString(r.renderDropdown(state, width))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(r.renderSelection(state.Selection, width))
	content.WriteString("\n")
	if state.Counter != "" {
		content.WriteString(r.styles.Dim.Render(state.Counter))
		content.WriteString("\n")
	}
	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderDropdown(state ViewState, width int) string {
	if state.StatusKind == StatusNone {
		return r.dropdown.RenderList(state.Rows, state.MoreAbove, state.MoreBelow, width)
	}

	var style lipgloss.Style
	switch state.StatusKind {
	case StatusError:
		style = r.styles.StatusError
	case StatusEmpty:
		style = r.styles.StatusEmpty
	default:
		style = r.styles.StatusLoading
	}
	line := style.Render(state.Status)
	if state.Detail != "" {
		line += r.styles.Dim.Render(": " + state.Detail)
	}
	return "\n" + line
}

func (r *Renderer) renderSelection(sel *domain.Candidate, width int) string {
	body := r.styles.Dim.Render("Nothing selected")
	if sel != nil {
		body = fmt.Sprintf("%s\n%s\n%s",
			r.styles.PanelLabel.Render(sel.Label),
			sel.Email,
			r.styles.Dim.Render(sel.Value))
	}
	return r.styles.Panel.Width(min(width, 60) - 2).Render("Selected\n" + body)
}

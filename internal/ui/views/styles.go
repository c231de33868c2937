package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	InputDisabled lipgloss.Style
	Scroll        lipgloss.Style
	Row           lipgloss.Style
	RowEmail      lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Selected      lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusEmpty   lipgloss.Style
	Panel         lipgloss.Style
	PanelLabel    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	inputBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:           lipgloss.NewStyle().Faint(true),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Input:         inputBorder.BorderForeground(lipgloss.Color("241")),
		InputFocused:  inputBorder.BorderForeground(lipgloss.Color("39")),
		InputDisabled: inputBorder.BorderForeground(lipgloss.Color("238")).Faint(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Row:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		RowEmail:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		PanelLabel: lipgloss.NewStyle().Bold(true),
	}
}

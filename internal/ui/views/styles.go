package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Arrow       lipgloss.Style
	ChildBullet lipgloss.Style
	Count       lipgloss.Style
	SelectionBg lipgloss.Style
	Toast       lipgloss.Style
	Orientation lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Arrow:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ChildBullet: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("78")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		Orientation: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}

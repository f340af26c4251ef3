package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"expandlist/internal/domain"
)

// ParentRenderer handles rendering of parent header rows
type ParentRenderer struct {
	styles         *Styles
	showChildCount bool
}

// NewParentRenderer creates a new parent renderer
func NewParentRenderer(styles *Styles, showChildCount bool) *ParentRenderer {
	return &ParentRenderer{
		styles:         styles,
		showChildCount: showChildCount,
	}
}

// RenderParent renders a parent header with its expand arrow
func (p *ParentRenderer) RenderParent(parent *domain.ParentItem, isSelected bool, width int) string {
	arrow := "▶"
	if parent.Expanded {
		arrow = "▼"
	}

	suffix := ""
	if p.showChildCount {
		suffix = fmt.Sprintf(" (%d)", len(parent.Children))
	}

	text := parent.Text
	if width > 0 {
		avail := width - runewidth.StringWidth(arrow) - 1 - runewidth.StringWidth(suffix)
		text = truncate(text, avail)
	}

	if isSelected {
		line := fmt.Sprintf("%s %s%s", arrow, text, suffix)
		return p.styles.SelectionBg.Render(padRight(line, width))
	}
	return fmt.Sprintf("%s %s%s", p.styles.Arrow.Render(arrow), text, p.styles.Count.Render(suffix))
}

// truncate shortens s to fit width display cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads the line with spaces to the full width
func padRight(line string, width int) string {
	if width <= 0 {
		return line
	}
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"expandlist/internal/domain"
)

// ReadyMarker is shown in the title bar when running under the e2e harness
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Rows          []domain.FlattenedRow
	SelectedIndex int
	VisibleStart  int
	VisibleEnd    int
	MoreAbove     bool
	MoreBelow     bool
	Orientation   string
	Toasts        []string
	StatusMessage string
	StatusIsError bool
	HelpView      string
	ShowReadyMark bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	parentRender *ParentRenderer
	childRender  *ChildRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showChildCount bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		parentRender: NewParentRenderer(styles, showChildCount),
		childRender:  NewChildRenderer(styles),
	}
}

// SetShowChildCount swaps the parent renderer after a settings change
func (r *Renderer) SetShowChildCount(show bool) {
	r.parentRender = NewParentRenderer(r.styles, show)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // main container padding

	logo := r.styles.Title.Render("expandlist")
	if state.ShowReadyMark {
		logo += " " + ReadyMarker
	}
	titleLine := logo
	if state.Orientation != "" {
		right := r.styles.Orientation.Render(fmt.Sprintf("[%s]", state.Orientation))
		padding := availableWidth - lipgloss.Width(logo) - lipgloss.Width(right)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + right
	}
	content.WriteString(titleLine)
	content.WriteString("\n\n")

	if len(state.Rows) == 0 {
		content.WriteString(r.styles.Dim.Render("No items."))
	} else {
		content.WriteString(r.renderRows(state, availableWidth))
	}

	if bottom := r.renderFooter(state); bottom != "" {
		// push the footer to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - lipgloss.Height(bottom)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(bottom)
	}

	return r.styles.Main.Render(content.String())
}

// ChromeHeight returns the number of screen lines used by everything except the row list
func (r *Renderer) ChromeHeight(state ViewState) int {
	h := 2 + 2 // container padding, title and the blank line under it
	if bottom := r.renderFooter(state); bottom != "" {
		h += lipgloss.Height(bottom)
	}
	return h
}

func (r *Renderer) renderFooter(state ViewState) string {
	var footer []string
	for _, t := range state.Toasts {
		footer = append(footer, r.styles.Toast.Render(t))
	}
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		footer = append(footer, style.Render(state.StatusMessage))
	}
	if state.HelpView != "" {
		footer = append(footer, r.styles.Help.Render(state.HelpView))
	}
	return strings.Join(footer, "\n")
}

func (r *Renderer) renderRows(state ViewState, width int) string {
	var lines []string

	if state.MoreAbove {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.VisibleStart)))
	}

	end := state.VisibleEnd
	if end > len(state.Rows) {
		end = len(state.Rows)
	}
	for i := state.VisibleStart; i < end; i++ {
		lines = append(lines, r.RenderRow(state.Rows[i], i == state.SelectedIndex, width))
	}

	if state.MoreBelow {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Rows)-end)))
	}
	return strings.Join(lines, "\n")
}

// RenderRow renders one flattened row
func (r *Renderer) RenderRow(row domain.FlattenedRow, isSelected bool, width int) string {
	if row.IsParent() {
		return r.parentRender.RenderParent(row.Parent, isSelected, width)
	}
	isLast := row.ChildIndex == len(row.Parent.Children)-1
	return r.childRender.RenderChild(row.Child, isLast, isSelected, width)
}

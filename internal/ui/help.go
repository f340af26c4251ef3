package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys keyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{r.keys.Up, r.keys.Down, r.keys.PageUp, r.keys.PageDown, r.keys.Home, r.keys.End}},
		{"Expand & Collapse", []key.Binding{r.keys.Toggle, r.keys.Expand, r.keys.Collapse, r.keys.ExpandAll, r.keys.CollapseAll}},
		{"Lifecycle", []key.Binding{r.keys.Rotate, r.keys.Suspend}},
		{"Other", []key.Binding{r.keys.Copy, r.keys.Help, r.keys.HelpPager, r.keys.Quit}},
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("expandlist Help"))
	help.WriteString("\n")

	for i, section := range sections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-12s", h.Key)), descStyle.Render(h.Desc)))
		}
		if i < len(sections)-1 {
			help.WriteString("\n")
		}
	}

	note := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString("\n")
	help.WriteString(note.Render("  Rotating rebuilds the list; expanded parents survive the rebuild."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// let ov finish tearing down its screen before we take it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Don't write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"expandlist/internal/config"
	"expandlist/internal/dataset"
	"expandlist/internal/domain"
	"expandlist/internal/eventbus"
	"expandlist/internal/host"
	"expandlist/internal/ui/logic"
	"expandlist/internal/ui/views"
)

// E2EEnvVar makes the view print a readiness marker for the pty test harness
const E2EEnvVar = "EXPANDLIST_E2E_TEST"

const statusDuration = 3 * time.Second

// Model represents the UI state. It plays the embedding environment for the
// host surface: it creates it, relays toggles, and drives save/restore on
// rotation and suspend.
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	surface *host.Surface
	rows    []domain.FlattenedRow

	width     int
	height    int
	sized     bool
	landscape bool

	keys       keyMap
	help       help.Model
	navigator  *logic.Navigator
	renderer   *views.Renderer
	helpRender *HelpRenderer
	toasts     toastQueue

	statusMessage string
	statusIsError bool
	inPagerMode   bool
	showReadyMark bool

	// saved across a suspend until the process resumes
	suspendBundle *host.Bundle
	rotations     int

	// fatal error that ended the program
	err error

	copyToClipboard func(string) error

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model and brings up the host surface
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := defaultKeyMap()

	m := &Model{
		bus:             bus,
		config:          cfg,
		keys:            keys,
		help:            help.New(),
		navigator:       logic.NewNavigator(),
		renderer:        views.NewRenderer(cfg.UI.ShowChildCount),
		helpRender:      NewHelpRenderer(keys),
		showReadyMark:   os.Getenv(E2EEnvVar) != "",
		copyToClipboard: clipboard.WriteAll,
	}

	m.surface = m.newSurface()
	if err := m.surface.Create(nil); err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}
	m.refreshRows()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Err returns the error that made the program quit, if any
func (m *Model) Err() error {
	return m.err
}

// Rows returns the rows currently shown
func (m *Model) Rows() []domain.FlattenedRow {
	return m.rows
}

// Rotations returns how many times the surface has been rebuilt
func (m *Model) Rotations() int {
	return m.rotations
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd = m.handleResize(msg)

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		cmd = m.handleKey(msg)

	case tea.ResumeMsg:
		cmd = m.handleResume()

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)

	case toastExpiredMsg:
		m.toasts.expire(msg.id)

	case clearStatusMsg:
		m.statusMessage = ""
		m.statusIsError = false

	case copiedMsg:
		if msg.err != nil {
			slog.Warn("ui: clipboard write failed", "error", msg.err)
			cmd = m.setError(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			cmd = m.setStatus(fmt.Sprintf("Copied %q", msg.text))
		}

	case helpPagerMsg:
		if msg.err != nil {
			slog.Warn("ui: help pager failed", "error", msg.err)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
	}

	m.updateViewportHeight()
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	if !m.sized {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	start, end := m.navigator.VisibleRange()
	orientation := "portrait"
	if m.landscape {
		orientation = "landscape"
	}
	return views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Rows:          m.rows,
		SelectedIndex: m.navigator.SelectedIndex(),
		VisibleStart:  start,
		VisibleEnd:    end,
		MoreAbove:     m.navigator.HasMoreAbove(),
		MoreBelow:     m.navigator.HasMoreBelow(),
		Orientation:   orientation,
		Toasts:        m.toasts.texts(),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		HelpView:      m.help.View(m.keys),
		ShowReadyMark: m.showReadyMark,
	}
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	landscape := m.isLandscape(msg.Width, msg.Height)
	if !m.sized {
		m.sized = true
		m.landscape = landscape
		return nil
	}
	if landscape == m.landscape {
		return nil
	}
	// while suspended the flip is applied on resume
	if m.surface.State() != host.StateReady {
		slog.Debug("ui: deferring rotation", "state", m.surface.State(), "width", msg.Width, "height", msg.Height)
		return nil
	}
	m.landscape = landscape
	return m.rotate()
}

func (m *Model) isLandscape(width, height int) bool {
	ratio := m.config.UI.LandscapeRatio
	if ratio <= 0 {
		ratio = 2.0
	}
	return float64(width) >= ratio*float64(height)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.surface.Destroy(); err != nil {
			slog.Warn("ui: destroy on quit", "error", err)
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.navigator.MoveBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.navigator.MoveBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.navigator.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.navigator.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.navigator.Home()
	case key.Matches(msg, m.keys.End):
		m.navigator.End()

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.currentRow(); ok {
			return m.toggle(row.Parent.ID)
		}
	case key.Matches(msg, m.keys.Expand):
		if row, ok := m.currentRow(); ok && row.IsParent() && !row.Parent.Expanded {
			return m.toggle(row.Parent.ID)
		}
	case key.Matches(msg, m.keys.Collapse):
		row, ok := m.currentRow()
		if !ok {
			return nil
		}
		if !row.IsParent() {
			m.selectParent(row.Parent.ID)
			return nil
		}
		if row.Parent.Expanded {
			return m.toggle(row.Parent.ID)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		return m.bulk(m.surface.OnExpandAll)
	case key.Matches(msg, m.keys.CollapseAll):
		return m.bulk(m.surface.OnCollapseAll)

	case key.Matches(msg, m.keys.Rotate):
		m.landscape = !m.landscape
		return m.rotate()
	case key.Matches(msg, m.keys.Suspend):
		return m.suspend()

	case key.Matches(msg, m.keys.Copy):
		if row, ok := m.currentRow(); ok {
			return m.copyRow(row.Text())
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.HelpPager):
		return m.showHelpPager()
	}
	return nil
}

// toggle flips one parent and keeps the cursor on its header row
func (m *Model) toggle(parentID int) tea.Cmd {
	res, err := m.surface.OnToggleRequested(parentID)
	if err != nil {
		return m.fail(err)
	}
	m.rows = res.Rows
	m.navigator.SetTotal(len(m.rows))
	m.selectParent(parentID)
	return nil
}

func (m *Model) bulk(op func() error) tea.Cmd {
	anchor := -1
	if row, ok := m.currentRow(); ok {
		anchor = row.Parent.ID
	}
	if err := op(); err != nil {
		return m.fail(err)
	}
	m.refreshRows()
	if anchor >= 0 {
		m.selectParent(anchor)
	}
	return nil
}

// rotate tears the surface down and rebuilds it from a saved bundle
func (m *Model) rotate() tea.Cmd {
	anchor := -1
	if row, ok := m.currentRow(); ok {
		anchor = row.Parent.ID
	}

	bundle := host.NewBundle()
	if err := m.surface.OnSave(bundle); err != nil {
		return m.fail(err)
	}
	if err := m.surface.Destroy(); err != nil {
		return m.fail(err)
	}

	m.surface = m.newSurface()
	if err := m.surface.Create(bundle); err != nil {
		return m.fail(err)
	}
	m.rotations++
	m.refreshRows()
	if anchor >= 0 {
		if _, err := m.surface.ParentRow(anchor); err == nil {
			m.selectParent(anchor)
		}
	}

	orientation := "portrait"
	if m.landscape {
		orientation = "landscape"
	}
	slog.Info("ui: rotated", "orientation", orientation, "rows", len(m.rows))
	return m.setStatus(fmt.Sprintf("Rotated to %s", orientation))
}

// suspend saves state before handing the terminal back to the shell
func (m *Model) suspend() tea.Cmd {
	bundle := host.NewBundle()
	if err := m.surface.OnSave(bundle); err != nil {
		return m.fail(err)
	}
	m.suspendBundle = bundle
	return tea.Suspend
}

func (m *Model) handleResume() tea.Cmd {
	if m.surface.State() != host.StateSaved {
		return nil
	}
	if err := m.surface.OnResume(); err != nil {
		return m.fail(err)
	}
	if m.suspendBundle != nil {
		if err := m.surface.OnRestore(m.suspendBundle); err != nil {
			slog.Warn("ui: restore after resume failed", "error", err)
		}
		m.suspendBundle = nil
	}
	m.refreshRows()
	if m.sized && m.isLandscape(m.width, m.height) != m.landscape {
		m.landscape = !m.landscape
		return m.rotate()
	}
	return m.setStatus("Resumed")
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	ttl := time.Duration(m.config.UI.ToastMillis) * time.Millisecond
	switch e := event.(type) {
	case domain.ParentExpandedEvent:
		return m.toasts.push(fmt.Sprintf("Item %d expanded", e.Position), ttl)
	case domain.ParentCollapsedEvent:
		return m.toasts.push(fmt.Sprintf("Item %d collapsed", e.Position), ttl)
	case domain.ErrorEvent:
		return m.setError(e.Message)
	}
	return nil
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.config = cfg
	m.renderer.SetShowChildCount(cfg.UI.ShowChildCount)
	slog.Info("ui: settings reloaded", "toast_ms", cfg.UI.ToastMillis, "show_child_count", cfg.UI.ShowChildCount)
}

func (m *Model) copyRow(text string) tea.Cmd {
	write := m.copyToClipboard
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

// showHelpPager opens the full key reference in ov
func (m *Model) showHelpPager() tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		m.help.ShowAll = true
		return nil
	}
	content := m.helpRender.RenderHelpContentPlain()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// fail records an error the program cannot recover from and quits
func (m *Model) fail(err error) tea.Cmd {
	slog.Error("ui: fatal", "error", err)
	m.err = err
	return tea.Quit
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = false
	return tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) setError(text string) tea.Cmd {
	m.statusMessage = text
	m.statusIsError = true
	return tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) newSurface() *host.Surface {
	cfg := m.config
	return host.NewSurface(func() []*domain.ParentItem {
		return dataset.Generate(cfg.DatasetOptions())
	}, m.bus)
}

func (m *Model) refreshRows() {
	m.rows = m.surface.Rows()
	m.navigator.SetTotal(len(m.rows))
}

func (m *Model) currentRow() (domain.FlattenedRow, bool) {
	if len(m.rows) == 0 {
		return domain.FlattenedRow{}, false
	}
	row, err := m.surface.RowAt(m.navigator.SelectedIndex())
	if err != nil {
		if errors.Is(err, domain.ErrOutOfRange) {
			slog.Error("ui: cursor outside rows", "error", err)
		}
		return domain.FlattenedRow{}, false
	}
	return row, true
}

func (m *Model) selectParent(parentID int) {
	idx, err := m.surface.ParentRow(parentID)
	if err != nil {
		slog.Warn("ui: parent row lookup", "error", err)
		return
	}
	m.navigator.SetSelectedIndex(idx)
}

func (m *Model) updateViewportHeight() {
	if !m.sized {
		return
	}
	m.navigator.SetViewportHeight(m.height - m.renderer.ChromeHeight(m.viewState()))
}

package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expandlist/internal/config"
	"expandlist/internal/domain"
	"expandlist/internal/eventbus"
	"expandlist/internal/host"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dataset.Items = 3
	return cfg
}

func newTestModel(t *testing.T, bus eventbus.EventBus) *Model {
	t.Helper()
	m, err := NewModel(bus, smallConfig())
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rowTexts(m *Model) []string {
	out := make([]string, len(m.Rows()))
	for i, r := range m.Rows() {
		out[i] = r.Text()
	}
	return out
}

func TestModelInitialRows(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, []string{"Parent 0", "Child 0", "Second child 0", "Parent 1", "Parent 2"}, rowTexts(m))
	assert.Contains(t, m.View(), "Parent 2")
	assert.Contains(t, m.View(), "[portrait]")
}

func TestModelViewBeforeSize(t *testing.T) {
	m, err := NewModel(nil, smallConfig())
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
}

func TestModelToggleFromKeys(t *testing.T) {
	m := newTestModel(t, nil)

	// move to Parent 1 and expand it
	for i := 0; i < 3; i++ {
		m.Update(keyRunes("j"))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Parent 0", "Child 0", "Second child 0", "Parent 1", "Child 1", "Parent 2"}, rowTexts(m))
	assert.Equal(t, 3, m.navigator.SelectedIndex())

	// from a child row, space collapses the parent and lands on its header
	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m.Update(keyRunes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Equal(t, []string{"Parent 0", "Parent 1", "Child 1", "Parent 2"}, rowTexts(m))
	assert.Equal(t, 0, m.navigator.SelectedIndex())
}

func TestModelExpandCollapseKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(keyRunes("G"))
	m.Update(keyRunes("l"))
	assert.Len(t, m.Rows(), 7)
	m.Update(keyRunes("l"))
	assert.Len(t, m.Rows(), 7, "expanding an expanded parent is a no-op")

	// h on a child jumps to the parent, a second h collapses it
	m.Update(keyRunes("G"))
	m.Update(keyRunes("h"))
	assert.Equal(t, 4, m.navigator.SelectedIndex())
	m.Update(keyRunes("h"))
	assert.Len(t, m.Rows(), 5)

	m.Update(keyRunes("E"))
	assert.Len(t, m.Rows(), 8)
	assert.Equal(t, 5, m.navigator.SelectedIndex(), "cursor stays on the same parent")
	m.Update(keyRunes("C"))
	assert.Equal(t, []string{"Parent 0", "Parent 1", "Parent 2"}, rowTexts(m))
	assert.Equal(t, 2, m.navigator.SelectedIndex())
}

func TestModelRotatePreservesExpansion(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(keyRunes("G"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // expand Parent 2
	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // collapse Parent 0
	want := rowTexts(m)
	before := m.surface

	m.Update(keyRunes("r"))
	assert.Equal(t, 1, m.Rotations())
	assert.NotSame(t, before, m.surface)
	assert.Equal(t, host.StateDestroyed, before.State())
	assert.Equal(t, host.StateReady, m.surface.State())
	assert.Equal(t, want, rowTexts(m))
	assert.Contains(t, m.View(), "[landscape]")
	assert.Contains(t, m.View(), "Rotated to landscape")
}

func TestModelResizeAcrossOrientationRotates(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	assert.Equal(t, 0, m.Rotations(), "same orientation")

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 1, m.Rotations())
	assert.True(t, m.landscape)
}

func TestModelSuspendResumeRestores(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(keyRunes("E"))
	want := rowTexts(m)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.SuspendMsg{}, cmd())
	assert.Equal(t, host.StateSaved, m.surface.State())

	m.Update(tea.ResumeMsg{})
	assert.Equal(t, host.StateReady, m.surface.State())
	assert.Equal(t, want, rowTexts(m))
	assert.Nil(t, m.suspendBundle)
}

func TestModelResizeWhileSuspendedRotatesOnResume(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(keyRunes("G"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	want := rowTexts(m)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, host.StateSaved, m.surface.State())

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	assert.Nil(t, cmd)
	require.NoError(t, m.Err())
	assert.Equal(t, host.StateSaved, m.surface.State())
	assert.Equal(t, 0, m.Rotations())

	m.Update(tea.ResumeMsg{})
	require.NoError(t, m.Err())
	assert.Equal(t, host.StateReady, m.surface.State())
	assert.Equal(t, 1, m.Rotations())
	assert.True(t, m.landscape)
	assert.Equal(t, want, rowTexts(m))
	assert.Contains(t, m.View(), "[landscape]")
}

func TestModelResizeWhileSuspendedWithoutFlip(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	m.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	m.Update(tea.ResumeMsg{})

	require.NoError(t, m.Err())
	assert.Equal(t, 0, m.Rotations())
	assert.Equal(t, 70, m.width)
	assert.Contains(t, m.View(), "Resumed")
}

func TestModelToastsFromEvents(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(EventMsg{Event: domain.ParentExpandedEvent{ParentID: 1, Position: 1}})
	require.NotNil(t, cmd)
	m.Update(EventMsg{Event: domain.ParentCollapsedEvent{ParentID: 0, Position: 0}})
	assert.Equal(t, []string{"Item 1 expanded", "Item 0 collapsed"}, m.toasts.texts())
	assert.Contains(t, m.View(), "Item 1 expanded")

	m.Update(toastExpiredMsg{id: 1})
	assert.Equal(t, []string{"Item 0 collapsed"}, m.toasts.texts())
}

func TestModelToastsThroughBus(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	received := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventParentExpanded, func(e eventbus.DomainEvent) { received <- e })

	m := newTestModel(t, bus)
	m.Update(keyRunes("G"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case e := <-received:
		m.Update(EventMsg{Event: e})
	case <-time.After(2 * time.Second):
		t.Fatal("expected an expand event on the bus")
	}
	assert.Equal(t, []string{"Item 2 expanded"}, m.toasts.texts())
}

func TestModelCopyRow(t *testing.T) {
	m := newTestModel(t, nil)
	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m.Update(keyRunes("j"))
	_, cmd := m.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, "Child 0", copied)
	assert.Contains(t, m.View(), `Copied "Child 0"`)

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	_, cmd = m.Update(keyRunes("y"))
	m.Update(cmd())
	assert.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestModelConfigReload(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Contains(t, m.View(), "Parent 0 (2)")

	cfg := smallConfig()
	cfg.UI.ShowChildCount = false
	m.Update(ConfigReloadedMsg{Config: cfg})
	assert.NotContains(t, m.View(), "Parent 0 (2)")
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t, nil)
	assert.NotContains(t, m.View(), "expand all")
	m.Update(keyRunes("?"))
	assert.Contains(t, m.View(), "expand all")

	// without a program the pager key falls back to the full help bar
	m.Update(keyRunes("?"))
	m.Update(keyRunes("H"))
	assert.True(t, m.help.ShowAll)
}

func TestModelQuitDestroysSurface(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, host.StateDestroyed, m.surface.State())
	assert.NoError(t, m.Err())
}

func TestModelFailsFastOnUnknownParent(t *testing.T) {
	m := newTestModel(t, nil)
	cmd := m.toggle(99)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, m.Err(), domain.ErrUnknownParent)
}

func TestHelpContentListsBindings(t *testing.T) {
	content := NewHelpRenderer(defaultKeyMap()).RenderHelpContentPlain()
	for _, want := range []string{"Navigation", "Expand & Collapse", "rotate", "collapse all", "help pager"} {
		assert.Contains(t, content, want)
	}
}

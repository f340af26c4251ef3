package host

import (
	"fmt"
	"log/slog"

	"expandlist/internal/domain"
	"expandlist/internal/expansion"
)

// ExpansionStateKey is the bundle key the expansion blob is stored under
const ExpansionStateKey = "expandlist.expansion_state"

// State is a lifecycle state of the surface
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateSaved
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateSaved:
		return "Saved"
	case StateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Source builds the fixed dataset when the surface is created
type Source func() []*domain.ParentItem

// Surface owns the expansion store for one lifetime of the list screen.
// It is driven from the UI loop and is not safe for concurrent use.
type Surface struct {
	state  State
	source Source
	pub    expansion.Publisher
	store  *expansion.Store
}

// NewSurface creates a surface in the Uninitialized state
func NewSurface(source Source, pub expansion.Publisher) *Surface {
	return &Surface{
		state:  StateUninitialized,
		source: source,
		pub:    pub,
	}
}

// State returns the current lifecycle state
func (s *Surface) State() State {
	return s.state
}

// Create builds the dataset and enters Ready. If saved carries expansion state it is
// applied before the first rows are computed; a corrupt blob is logged and skipped.
func (s *Surface) Create(saved *Bundle) error {
	if s.state != StateUninitialized {
		return s.badTransition("create")
	}

	store, err := expansion.NewStore(s.source(), s.pub)
	if err != nil {
		return fmt.Errorf("failed to build expansion store: %w", err)
	}
	s.store = store

	if blob, ok := saved.Get(ExpansionStateKey); ok {
		if err := store.Deserialize(expansion.StateBlob(blob)); err != nil {
			slog.Warn("host: discarding saved expansion state", "error", err)
		}
	}

	s.transition(StateReady)
	return nil
}

// OnToggleRequested flips one parent. The store publishes the expand/collapse event.
func (s *Surface) OnToggleRequested(parentID int) (expansion.ToggleResult, error) {
	if s.state != StateReady {
		return expansion.ToggleResult{}, s.badTransition("toggle")
	}
	res, err := s.store.Toggle(parentID)
	if err != nil {
		return expansion.ToggleResult{}, fmt.Errorf("toggle parent %d: %w", parentID, err)
	}
	slog.Debug("host: toggled", "parent", parentID, "expanded", res.Expanded, "rows", len(res.Rows))
	return res, nil
}

// OnExpandAll expands every parent
func (s *Surface) OnExpandAll() error {
	if s.state != StateReady {
		return s.badTransition("expand all")
	}
	s.store.ExpandAll()
	return nil
}

// OnCollapseAll collapses every parent
func (s *Surface) OnCollapseAll() error {
	if s.state != StateReady {
		return s.badTransition("collapse all")
	}
	s.store.CollapseAll()
	return nil
}

// OnSave serializes expansion state into out and enters Saved
func (s *Surface) OnSave(out *Bundle) error {
	if s.state != StateReady {
		return s.badTransition("save")
	}
	if out == nil {
		return fmt.Errorf("save: nil bundle")
	}
	blob, err := s.store.Serialize()
	if err != nil {
		return err
	}
	out.Put(ExpansionStateKey, blob)
	if s.pub != nil {
		s.pub.Publish(domain.StateSavedEvent{Bytes: len(blob)})
	}
	s.transition(StateSaved)
	return nil
}

// OnResume returns from Saved to Ready
func (s *Surface) OnResume() error {
	if s.state != StateSaved {
		return s.badTransition("resume")
	}
	s.transition(StateReady)
	return nil
}

// OnRestore applies the expansion state found in in. A bundle without it is a no-op.
func (s *Surface) OnRestore(in *Bundle) error {
	if s.state != StateReady {
		return s.badTransition("restore")
	}
	blob, ok := in.Get(ExpansionStateKey)
	if !ok {
		return nil
	}
	return s.store.Deserialize(expansion.StateBlob(blob))
}

// Destroy ends the surface's lifetime
func (s *Surface) Destroy() error {
	if s.state == StateDestroyed || s.state == StateUninitialized {
		return s.badTransition("destroy")
	}
	s.store = nil
	s.transition(StateDestroyed)
	return nil
}

// Rows returns the visible rows, or nil before Create and after Destroy
func (s *Surface) Rows() []domain.FlattenedRow {
	if s.store == nil {
		return nil
	}
	return s.store.Rows()
}

// RowCount returns the number of visible rows
func (s *Surface) RowCount() int {
	if s.store == nil {
		return 0
	}
	return s.store.RowCount()
}

// RowAt returns the visible row at index
func (s *Surface) RowAt(index int) (domain.FlattenedRow, error) {
	if s.store == nil {
		return domain.FlattenedRow{}, domain.OutOfRangeError{Index: index, Count: 0}
	}
	return s.store.RowAt(index)
}

// ParentRow returns the header row index of a parent
func (s *Surface) ParentRow(parentID int) (int, error) {
	if s.store == nil {
		return -1, domain.UnknownParentError{ID: parentID}
	}
	return s.store.ParentRow(parentID)
}

func (s *Surface) transition(to State) {
	from := s.state
	s.state = to
	slog.Debug("host: lifecycle", "from", from, "to", to)
	if s.pub != nil {
		s.pub.Publish(domain.LifecycleEvent{From: from.String(), To: to.String()})
	}
}

func (s *Surface) badTransition(op string) error {
	return fmt.Errorf("%w: %s in state %s", domain.ErrInvalidTransition, op, s.state)
}

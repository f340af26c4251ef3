package expansion

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"expandlist/internal/domain"
	"expandlist/internal/list"
)

// StateVersion is the schema version written into every StateBlob
const StateVersion = 1

// StateBlob is the opaque serialized expansion state
type StateBlob []byte

// savedState is the wire format of a StateBlob:
//
//	{"version":1,"expanded":{"0":true,"1":false}}
type savedState struct {
	Version  int          `json:"version"`
	Expanded map[int]bool `json:"expanded"`
}

// Publisher receives expand/collapse notifications
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// ToggleResult is what a successful toggle hands back to the caller
type ToggleResult struct {
	ParentID int
	Position int
	Expanded bool
	Rows     []domain.FlattenedRow
	Delta    list.Delta
}

// Store tracks per-parent expansion and keeps the flattened rows in sync.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	parents []*domain.ParentItem
	index   map[int]int // parent id -> position
	binder  *list.Binder
	pub     Publisher
}

// NewStore creates a store over parents. Parent ids must be unique.
// pub may be nil, in which case no notifications are sent.
func NewStore(parents []*domain.ParentItem, pub Publisher) (*Store, error) {
	index := make(map[int]int, len(parents))
	for i, p := range parents {
		if p == nil {
			return nil, fmt.Errorf("parent at position %d is nil", i)
		}
		if prev, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate parent id %d at positions %d and %d", p.ID, prev, i)
		}
		index[p.ID] = i
	}

	return &Store{
		parents: parents,
		index:   index,
		binder:  list.NewBinder(parents),
		pub:     pub,
	}, nil
}

// Toggle flips the expansion flag of one parent and re-flattens its block
func (s *Store) Toggle(parentID int) (ToggleResult, error) {
	s.mu.Lock()
	pos, ok := s.index[parentID]
	if !ok {
		s.mu.Unlock()
		return ToggleResult{}, domain.UnknownParentError{ID: parentID}
	}

	p := s.parents[pos]
	p.Expanded = !p.Expanded
	delta, err := s.binder.Sync(pos)
	if err != nil {
		// binder and index disagree; restore the flag before reporting
		p.Expanded = !p.Expanded
		s.mu.Unlock()
		return ToggleResult{}, fmt.Errorf("sync parent %d: %w", parentID, err)
	}
	result := ToggleResult{
		ParentID: parentID,
		Position: pos,
		Expanded: p.Expanded,
		Rows:     s.binder.Rows(),
		Delta:    delta,
	}
	s.mu.Unlock()

	s.notify(result.ParentID, result.Position, result.Expanded)
	return result, nil
}

// IsExpanded reports the current flag of a parent
func (s *Store) IsExpanded(parentID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[parentID]
	if !ok {
		return false, domain.UnknownParentError{ID: parentID}
	}
	return s.parents[pos].Expanded, nil
}

// ExpandAll expands every parent, notifying once per parent that changed
func (s *Store) ExpandAll() []domain.FlattenedRow {
	return s.setAll(true)
}

// CollapseAll collapses every parent, notifying once per parent that changed
func (s *Store) CollapseAll() []domain.FlattenedRow {
	return s.setAll(false)
}

func (s *Store) setAll(expanded bool) []domain.FlattenedRow {
	s.mu.Lock()
	var changed []int
	for i, p := range s.parents {
		if p.Expanded != expanded {
			p.Expanded = expanded
			changed = append(changed, i)
		}
	}
	s.binder.Rebind(s.parents)
	rows := s.binder.Rows()
	ids := make([]int, len(changed))
	for k, pos := range changed {
		ids[k] = s.parents[pos].ID
	}
	s.mu.Unlock()

	for k, pos := range changed {
		s.notify(ids[k], pos, expanded)
	}
	return rows
}

// Serialize encodes the id and flag of every parent
func (s *Store) Serialize() (StateBlob, error) {
	s.mu.Lock()
	state := savedState{
		Version:  StateVersion,
		Expanded: make(map[int]bool, len(s.parents)),
	}
	for _, p := range s.parents {
		state.Expanded[p.ID] = p.Expanded
	}
	s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expansion state: %w", err)
	}
	return StateBlob(data), nil
}

// Deserialize applies a blob produced by Serialize. Parents missing from the blob
// fall back to their construction default; ids with no live parent are ignored.
// A malformed blob leaves the store unchanged.
func (s *Store) Deserialize(blob StateBlob) error {
	var state savedState
	if err := json.Unmarshal(blob, &state); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	if state.Version != StateVersion {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidState, state.Version)
	}

	s.mu.Lock()
	applied, ignored := 0, 0
	for _, p := range s.parents {
		if expanded, ok := state.Expanded[p.ID]; ok {
			p.Expanded = expanded
			applied++
		} else {
			p.Expanded = p.InitiallyExpanded
		}
	}
	for id := range state.Expanded {
		if _, ok := s.index[id]; !ok {
			ignored++
			slog.Debug("expansion: ignoring unknown parent id in saved state", "id", id)
		}
	}
	s.binder.Rebind(s.parents)
	s.mu.Unlock()

	if s.pub != nil {
		s.pub.Publish(domain.StateRestoredEvent{Applied: applied, Ignored: ignored})
	}
	return nil
}

// Parents returns the parent list in display order
func (s *Store) Parents() []*domain.ParentItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ParentItem, len(s.parents))
	copy(out, s.parents)
	return out
}

// Rows returns a copy of the visible rows
func (s *Store) Rows() []domain.FlattenedRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binder.Rows()
}

// RowCount returns the number of visible rows
func (s *Store) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binder.RowCount()
}

// RowAt returns the visible row at index
func (s *Store) RowAt(index int) (domain.FlattenedRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.binder.RowAt(index)
}

// ParentRow returns the header row index of a parent
func (s *Store) ParentRow(parentID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[parentID]
	if !ok {
		return -1, domain.UnknownParentError{ID: parentID}
	}
	return s.binder.ParentRow(pos), nil
}

func (s *Store) notify(parentID, position int, expanded bool) {
	if s.pub == nil {
		return
	}
	if expanded {
		s.pub.Publish(domain.ParentExpandedEvent{ParentID: parentID, Position: position})
	} else {
		s.pub.Publish(domain.ParentCollapsedEvent{ParentID: parentID, Position: position})
	}
}

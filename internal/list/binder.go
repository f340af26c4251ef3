package list

import (
	"expandlist/internal/domain"
)

// Delta describes how a toggle changed the flattened sequence
type Delta struct {
	ParentIndex int // position of the toggled parent in the parent list
	ParentRow   int // row index of the toggled parent's header
	Start       int // first row that was inserted or removed (ParentRow+1)
	Inserted    int
	Removed     int
}

// Shift returns the signed offset applied to every row after the toggled block
func (d Delta) Shift() int {
	return d.Inserted - d.Removed
}

// Empty reports whether the toggle left the sequence unchanged
func (d Delta) Empty() bool {
	return d.Inserted == 0 && d.Removed == 0
}

// Flatten produces the visible rows for parents: one header per parent followed by
// its children when expanded
func Flatten(parents []*domain.ParentItem) []domain.FlattenedRow {
	rows := make([]domain.FlattenedRow, 0, visibleCount(parents))
	for i, p := range parents {
		rows = appendBlock(rows, p, i)
	}
	return rows
}

func visibleCount(parents []*domain.ParentItem) int {
	n := len(parents)
	for _, p := range parents {
		if p.Expanded {
			n += len(p.Children)
		}
	}
	return n
}

func appendBlock(rows []domain.FlattenedRow, p *domain.ParentItem, index int) []domain.FlattenedRow {
	rows = append(rows, domain.FlattenedRow{
		Kind:        domain.RowParent,
		Parent:      p,
		ParentIndex: index,
		ChildIndex:  -1,
	})
	if p.Expanded {
		rows = appendChildren(rows, p, index)
	}
	return rows
}

func appendChildren(rows []domain.FlattenedRow, p *domain.ParentItem, index int) []domain.FlattenedRow {
	for j := range p.Children {
		rows = append(rows, domain.FlattenedRow{
			Kind:        domain.RowChild,
			Parent:      p,
			ParentIndex: index,
			Child:       &p.Children[j],
			ChildIndex:  j,
		})
	}
	return rows
}

// Binder keeps the flattened sequence consistent with the parents' expansion flags.
// It is not safe for concurrent use; the owner serializes access.
type Binder struct {
	parents    []*domain.ParentItem
	rows       []domain.FlattenedRow
	parentRows []int // header row index per parent
}

// NewBinder creates a binder and computes the initial rows
func NewBinder(parents []*domain.ParentItem) *Binder {
	b := &Binder{}
	b.Rebind(parents)
	return b
}

// Rebind recomputes every row from scratch
func (b *Binder) Rebind(parents []*domain.ParentItem) {
	b.parents = parents
	b.rows = Flatten(parents)
	b.parentRows = make([]int, len(parents))
	row := 0
	for i, p := range parents {
		b.parentRows[i] = row
		row++
		if p.Expanded {
			row += len(p.Children)
		}
	}
}

// RowCount returns the length of the current flattened sequence
func (b *Binder) RowCount() int {
	return len(b.rows)
}

// RowAt returns the row at index
func (b *Binder) RowAt(index int) (domain.FlattenedRow, error) {
	if index < 0 || index >= len(b.rows) {
		return domain.FlattenedRow{}, domain.OutOfRangeError{Index: index, Count: len(b.rows)}
	}
	return b.rows[index], nil
}

// Rows returns a copy of the current sequence
func (b *Binder) Rows() []domain.FlattenedRow {
	out := make([]domain.FlattenedRow, len(b.rows))
	copy(out, b.rows)
	return out
}

// ParentRow returns the header row index of the parent at parentIndex, or -1
func (b *Binder) ParentRow(parentIndex int) int {
	if parentIndex < 0 || parentIndex >= len(b.parentRows) {
		return -1
	}
	return b.parentRows[parentIndex]
}

// Sync brings one parent's block in line with its Expanded flag. Rows before the
// block are untouched and rows after it move by exactly the child count.
func (b *Binder) Sync(parentIndex int) (Delta, error) {
	if parentIndex < 0 || parentIndex >= len(b.parents) {
		return Delta{}, domain.OutOfRangeError{Index: parentIndex, Count: len(b.parents)}
	}

	p := b.parents[parentIndex]
	header := b.parentRows[parentIndex]
	start := header + 1
	current := b.blockChildren(parentIndex)
	want := 0
	if p.Expanded {
		want = len(p.Children)
	}

	delta := Delta{
		ParentIndex: parentIndex,
		ParentRow:   header,
		Start:       start,
	}
	if current == want {
		return delta, nil
	}

	rows := make([]domain.FlattenedRow, 0, len(b.rows)-current+want)
	rows = append(rows, b.rows[:start]...)
	if want > 0 {
		rows = appendChildren(rows, p, parentIndex)
	}
	rows = append(rows, b.rows[start+current:]...)
	b.rows = rows

	shift := want - current
	for j := parentIndex + 1; j < len(b.parentRows); j++ {
		b.parentRows[j] += shift
	}

	delta.Inserted = want
	delta.Removed = current
	return delta, nil
}

// blockChildren counts the child rows currently rendered under a parent
func (b *Binder) blockChildren(parentIndex int) int {
	end := len(b.rows)
	if parentIndex+1 < len(b.parentRows) {
		end = b.parentRows[parentIndex+1]
	}
	return end - b.parentRows[parentIndex] - 1
}

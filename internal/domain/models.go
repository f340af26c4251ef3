package domain

// ChildItem is a leaf row, visible only while its parent is expanded
type ChildItem struct {
	Text string
}

// ParentItem is a top-level collapsible row that owns its children
type ParentItem struct {
	ID                int
	Text              string
	Children          []ChildItem
	Expanded          bool
	InitiallyExpanded bool // construction-time default, used when restored state omits this parent
}

// NewParentItem creates a parent whose expansion flag starts at its default
func NewParentItem(id int, text string, children []ChildItem, initiallyExpanded bool) *ParentItem {
	return &ParentItem{
		ID:                id,
		Text:              text,
		Children:          children,
		Expanded:          initiallyExpanded,
		InitiallyExpanded: initiallyExpanded,
	}
}

// RowKind discriminates flattened rows
type RowKind int

const (
	RowParent RowKind = iota
	RowChild
)

func (k RowKind) String() string {
	switch k {
	case RowParent:
		return "parent"
	case RowChild:
		return "child"
	default:
		return "unknown"
	}
}

// FlattenedRow is one renderable line of the list. It is derived, never persisted.
type FlattenedRow struct {
	Kind        RowKind
	Parent      *ParentItem
	ParentIndex int        // position of Parent in the parent list
	Child       *ChildItem // nil for parent rows
	ChildIndex  int        // -1 for parent rows
}

// Text returns the display text of the row
func (r FlattenedRow) Text() string {
	if r.Kind == RowChild && r.Child != nil {
		return r.Child.Text
	}
	if r.Parent != nil {
		return r.Parent.Text
	}
	return ""
}

// IsParent reports whether the row is a parent header
func (r FlattenedRow) IsParent() bool {
	return r.Kind == RowParent
}

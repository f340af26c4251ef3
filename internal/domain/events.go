package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventParentExpanded  EventType = "ParentExpanded"
	EventParentCollapsed EventType = "ParentCollapsed"
	EventStateSaved      EventType = "StateSaved"
	EventStateRestored   EventType = "StateRestored"
	EventLifecycle       EventType = "Lifecycle"
	EventConfigChanged   EventType = "ConfigChanged"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ParentExpandedEvent is emitted once per toggle that expands a parent
type ParentExpandedEvent struct {
	ParentID int
	Position int // index of the parent in the parent list
}

func (e ParentExpandedEvent) Type() EventType { return EventParentExpanded }

// ParentCollapsedEvent is emitted once per toggle that collapses a parent
type ParentCollapsedEvent struct {
	ParentID int
	Position int
}

func (e ParentCollapsedEvent) Type() EventType { return EventParentCollapsed }

// StateSavedEvent is emitted when expansion state is written to a container
type StateSavedEvent struct {
	Bytes int
}

func (e StateSavedEvent) Type() EventType { return EventStateSaved }

// StateRestoredEvent is emitted after a blob has been applied to the store
type StateRestoredEvent struct {
	Applied int // ids from the blob that matched a live parent
	Ignored int // ids from the blob with no live parent
}

func (e StateRestoredEvent) Type() EventType { return EventStateRestored }

// LifecycleEvent is emitted on every host surface state transition
type LifecycleEvent struct {
	From string
	To   string
}

func (e LifecycleEvent) Type() EventType { return EventLifecycle }

// ConfigChangedEvent is emitted when the config file changes on disk
type ConfigChangedEvent struct {
	Path string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when a background component fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"expandlist/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventParentExpanded  = domain.EventParentExpanded
	EventParentCollapsed = domain.EventParentCollapsed
	EventStateSaved      = domain.EventStateSaved
	EventStateRestored   = domain.EventStateRestored
	EventLifecycle       = domain.EventLifecycle
	EventConfigChanged   = domain.EventConfigChanged
	EventError           = domain.EventError
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeOrdered(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
	ordered bool
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	slog.Debug("eventbus: publishing", "type", event.Type())

	select {
	case <-b.quit:
		slog.Debug("eventbus: closed, dropping event", "type", event.Type())
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("eventbus: channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	return b.subscribe(eventType, handler, false)
}

// SubscribeOrdered subscribes a handler that runs on the dispatch goroutine,
// so it sees events in publish order. It must not block for long.
func (b *bus) SubscribeOrdered(eventType EventType, handler EventHandler) func() {
	return b.subscribe(eventType, handler, true)
}

func (b *bus) subscribe(eventType EventType, handler EventHandler, ordered bool) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler, ordered: ordered})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events still queued are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				if s.ordered {
					invoke(s.handler, event)
					continue
				}
				go invoke(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// invoke runs one handler, recovering from panics
func invoke(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("eventbus: handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

package event

import (
	"sync"

	"github.com/dshills/wavestorm/internal/engine/timeline"
)

// Type represents the kind of timeline change.
type Type int

const (
	// DataChanged indicates cycle values on one or more signals changed.
	DataChanged Type = iota

	// CyclesChanged indicates the total cycle count changed.
	CyclesChanged

	// SelectionChanged indicates the active selection moved.
	SelectionChanged

	// StructureChanged indicates signals were added, removed, or reordered.
	StructureChanged
)

// String returns the change type name.
func (t Type) String() string {
	switch t {
	case DataChanged:
		return "data"
	case CyclesChanged:
		return "cycles"
	case SelectionChanged:
		return "selection"
	case StructureChanged:
		return "structure"
	default:
		return "unknown"
	}
}

// Event describes a single timeline change.
type Event struct {
	// Type is the kind of change.
	Type Type

	// TotalCycles is the timeline length after the change.
	TotalCycles int

	// Selection holds the regions affected by the change, when known.
	Selection timeline.Selection
}

// Observer is called when a timeline change occurs.
type Observer func(ev Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id  uint64
	bus *Bus
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.bus != nil {
		s.bus.unsubscribe(s.id)
	}
}

// Bus manages timeline change subscriptions and delivers events
// synchronously in publish order.
type Bus struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{observers: make(map[uint64]Observer)}
}

// Subscribe registers an observer for all timeline changes.
func (b *Bus) Subscribe(observer Observer) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.observers[id] = observer

	return &Subscription{id: id, bus: b}
}

// Publish delivers an event to every subscribed observer. Observers are
// called outside the bus lock so they may subscribe or unsubscribe.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	observers := make([]Observer, 0, len(b.observers))
	for _, obs := range b.observers {
		observers = append(observers, obs)
	}
	b.mu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}

// unsubscribe removes an observer by ID.
func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.observers, id)
}

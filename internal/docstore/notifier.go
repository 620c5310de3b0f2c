package docstore

import (
	"context"
	"sync"
)

// ChangeKind classifies a mutation for change listeners.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ChangeEvent describes one mutation against the store. Group carries the
// leaf collection name so collection-group subscriptions can match without
// parsing the path.
type ChangeEvent struct {
	Path  string     `json:"path"`
	Group string     `json:"group"`
	DocID string     `json:"docId"`
	Kind  ChangeKind `json:"kind"`
}

// Notifier fans mutation events out to subscribers. The redis implementation
// in internal/cache crosses instance boundaries; MemoryNotifier stays
// in-process.
type Notifier interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Subscribe(fn func(ChangeEvent)) (cancel func())
}

// MemoryNotifier is an in-process Notifier. Dispatch is synchronous; handlers
// must not block (the watcher coalesces into a non-blocking kick).
type MemoryNotifier struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(ChangeEvent)
}

// NewMemoryNotifier creates an in-process notifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{handlers: make(map[int]func(ChangeEvent))}
}

// Publish delivers the event to every subscriber.
func (n *MemoryNotifier) Publish(_ context.Context, ev ChangeEvent) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.handlers {
		fn(ev)
	}
	return nil
}

// Subscribe registers a handler. The returned cancel is idempotent.
func (n *MemoryNotifier) Subscribe(fn func(ChangeEvent)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.handlers, id)
			n.mu.Unlock()
		})
	}
}

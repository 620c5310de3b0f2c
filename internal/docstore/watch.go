package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Target names what a subscription observes: a single collection path or a
// collection group across all tenants. Exactly one of the two is set.
type Target struct {
	Collection CollectionRef
	Group      GroupRef
}

// TargetCollection watches one collection.
func TargetCollection(col CollectionRef) Target { return Target{Collection: col} }

// TargetGroup watches a collection group.
func TargetGroup(g GroupRef) Target { return Target{Group: g} }

func (t Target) matches(ev ChangeEvent) bool {
	if !t.Collection.IsZero() {
		// Group-wide events (purges) carry no path and hit every collection
		// subscription with the same leaf name.
		if ev.Path == "" {
			return ev.Group == t.Collection.Leaf()
		}
		return ev.Path == t.Collection.Path()
	}
	return ev.Group == t.Group.Name()
}

// SnapshotFunc receives the full materialized result list on every delivery.
// Snapshots, never diffs.
type SnapshotFunc func(docs []Document)

// Watcher turns store change events into live query subscriptions. Each
// subscription requeries its target when a matching change lands and delivers
// the whole result to its callback. Change bursts coalesce: a requery already
// pending absorbs later kicks.
type Watcher struct {
	backend      Backend
	mu           sync.RWMutex
	subs         map[string]*subscription
	stopNotifier func()
}

type subscription struct {
	id      string
	target  Target
	filters []Filter
	sort    *Sort
	fn      SnapshotFunc

	kick chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWatcher creates a Watcher wired to the notifier's change feed.
func NewWatcher(backend Backend, notifier Notifier) *Watcher {
	w := &Watcher{
		backend: backend,
		subs:    make(map[string]*subscription),
	}
	if notifier != nil {
		w.stopNotifier = notifier.Subscribe(w.dispatch)
	}
	return w
}

// Subscribe opens a live view of the target. The callback first receives the
// current result (asynchronously, possibly an empty list before the first
// populated one) and then a fresh result after every matching change. The
// returned cancel func is idempotent; after it returns no further snapshots
// are delivered.
func (w *Watcher) Subscribe(target Target, filters []Filter, sort *Sort, fn SnapshotFunc) (cancel func()) {
	sub := &subscription{
		id:      uuid.New().String(),
		target:  target,
		filters: filters,
		sort:    sort,
		fn:      fn,
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	w.mu.Lock()
	w.subs[sub.id] = sub
	total := len(w.subs)
	w.mu.Unlock()
	log.Debug().Str("subscription_id", sub.id).Int("total_subscriptions", total).Msg("subscription opened")

	sub.kick <- struct{}{}
	go w.run(sub)

	return func() {
		sub.once.Do(func() {
			close(sub.done)
			w.mu.Lock()
			delete(w.subs, sub.id)
			w.mu.Unlock()
			log.Debug().Str("subscription_id", sub.id).Msg("subscription closed")
		})
	}
}

// Close cancels the notifier registration. Open subscriptions keep their goroutines
// until individually cancelled.
func (w *Watcher) Close() {
	if w.stopNotifier != nil {
		w.stopNotifier()
	}
}

// SubscriptionCount returns the number of open subscriptions.
func (w *Watcher) SubscriptionCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs)
}

func (w *Watcher) dispatch(ev ChangeEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, sub := range w.subs {
		if !sub.target.matches(ev) {
			continue
		}
		select {
		case sub.kick <- struct{}{}:
		default:
			// A requery is already pending; it will observe this change too.
		}
	}
}

func (w *Watcher) run(sub *subscription) {
	for {
		select {
		case <-sub.done:
			return
		case <-sub.kick:
			docs, err := w.load(sub)
			if err != nil {
				log.Error().Err(err).Str("subscription_id", sub.id).Msg("subscription requery failed")
				continue
			}
			// Re-check cancellation: never deliver after cancel returns.
			select {
			case <-sub.done:
				return
			default:
			}
			sub.fn(docs)
		}
	}
}

func (w *Watcher) load(sub *subscription) ([]Document, error) {
	ctx := context.Background()
	if !sub.target.Collection.IsZero() {
		return w.backend.Query(ctx, sub.target.Collection, sub.filters, sub.sort)
	}
	return w.backend.QueryGroup(ctx, sub.target.Group, sub.filters, sub.sort)
}

package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSnapshots() (SnapshotFunc, chan []Document) {
	ch := make(chan []Document, 16)
	return func(docs []Document) { ch <- docs }, ch
}

func waitSnapshot(t *testing.T, ch chan []Document) []Document {
	t.Helper()
	select {
	case docs := <-ch:
		return docs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestWatcherDeliversInitialSnapshot(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("products")
	require.NoError(t, m.Put(ctx, col, "p1", map[string]interface{}{"name": "Serum"}))

	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetCollection(col), nil, nil, fn)
	defer cancel()

	docs := waitSnapshot(t, ch)
	require.Len(t, docs, 1)
	assert.Equal(t, "p1", docs[0].ID)
}

func TestWatcherLiveness(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("stylists")

	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetCollection(col), nil, nil, fn)
	defer cancel()

	assert.Empty(t, waitSnapshot(t, ch), "first delivery may be an empty snapshot")

	require.NoError(t, m.Put(ctx, col, "a", map[string]interface{}{"name": "Maya"}))

	// The mutation must show up in a subsequent full snapshot (eventual, not
	// necessarily the very next delivery).
	deadline := time.After(2 * time.Second)
	for {
		select {
		case docs := <-ch:
			if len(docs) == 1 && docs[0].ID == "a" {
				return
			}
		case <-deadline:
			t.Fatal("mutation never reflected in a snapshot")
		}
	}
}

func TestWatcherFiltersSnapshot(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("stylists")
	require.NoError(t, m.Put(ctx, col, "a", map[string]interface{}{"name": "Maya", "status": "Active"}))
	require.NoError(t, m.Put(ctx, col, "b", map[string]interface{}{"name": "Leo", "status": "Inactive"}))

	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetCollection(col), []Filter{Eq("status", "Active")}, nil, fn)
	defer cancel()

	docs := waitSnapshot(t, ch)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
}

func TestWatcherGroupSubscriptionSeesAllTenants(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetGroup(Group("sales")), nil, nil, fn)
	defer cancel()

	waitSnapshot(t, ch)

	require.NoError(t, m.Put(ctx, Root("salons").Doc("a").Collection("sales"), "s1", map[string]interface{}{}))
	require.NoError(t, m.Put(ctx, Root("salons").Doc("b").Collection("sales"), "s2", map[string]interface{}{}))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case docs := <-ch:
			if len(docs) == 2 {
				return
			}
		case <-deadline:
			t.Fatal("group subscription never saw both tenants")
		}
	}
}

func TestWatcherUnsubscribeIdempotent(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	col := Root("salons")

	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetCollection(col), nil, nil, fn)
	waitSnapshot(t, ch)

	cancel()
	assert.NotPanics(t, cancel, "cancel must be idempotent")
	assert.Equal(t, 0, w.SubscriptionCount())

	// No further deliveries after cancel.
	require.NoError(t, m.Put(ctx, col, "s1", map[string]interface{}{"name": "Aurora"}))
	select {
	case docs := <-ch:
		t.Fatalf("snapshot delivered after unsubscribe: %v", docs)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherGroupDeleteKicksCollectionSubscription(t *testing.T) {
	notifier := NewMemoryNotifier()
	m := NewMemory(notifier)
	w := NewWatcher(m, notifier)
	defer w.Close()

	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("products")
	require.NoError(t, m.Put(ctx, col, "p1", map[string]interface{}{}))

	fn, ch := collectSnapshots()
	cancel := w.Subscribe(TargetCollection(col), nil, nil, fn)
	defer cancel()
	waitSnapshot(t, ch)

	// A purge publishes a pathless group event; collection subscriptions with
	// the same leaf must requery.
	_, err := m.DeleteGroup(ctx, Group("products"), 100)
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case docs := <-ch:
			if len(docs) == 0 {
				return
			}
		case <-deadline:
			t.Fatal("collection subscription never observed the group purge")
		}
	}
}

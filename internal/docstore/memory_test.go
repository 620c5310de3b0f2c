package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCreateStampsTimestamps(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("salons")

	id, err := m.Create(ctx, col, map[string]interface{}{"name": "Aurora"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := m.Get(ctx, col, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Aurora", doc.Fields["name"])
	assert.False(t, doc.CreatedAt.IsZero())
	assert.False(t, doc.UpdatedAt.Before(doc.CreatedAt))
}

func TestMemoryGetMissingReturnsNilNil(t *testing.T) {
	m := NewMemory(nil)
	doc, err := m.Get(context.Background(), Root("salons"), "nope")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestMemoryUpdateMergesAndAdvancesUpdatedAt(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("products")

	require.NoError(t, m.Put(ctx, col, "p1", map[string]interface{}{"name": "Serum", "price": 38}))
	before, err := m.Get(ctx, col, "p1")
	require.NoError(t, err)

	require.NoError(t, m.Update(ctx, col, "p1", map[string]interface{}{"price": 42}))
	after, err := m.Get(ctx, col, "p1")
	require.NoError(t, err)

	assert.Equal(t, "Serum", after.Fields["name"], "unpatched fields survive a merge")
	assert.EqualValues(t, 42, after.Fields["price"])
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "update strictly advances updatedAt")
}

func TestMemoryUpdateOnAbsentCreates(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("settings")

	require.NoError(t, m.Update(ctx, col, "app_config", map[string]interface{}{"legalText": "hi"}))
	doc, err := m.Get(ctx, col, "app_config")
	require.NoError(t, err)
	require.NotNil(t, doc, "merge-write upserts on absence")
	assert.Equal(t, "hi", doc.Fields["legalText"])
}

func TestMemoryPutReplacesWholesale(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("settings")

	require.NoError(t, m.Put(ctx, col, "cfg", map[string]interface{}{"a": 1, "b": 2}))
	require.NoError(t, m.Put(ctx, col, "cfg", map[string]interface{}{"a": 3}))

	doc, err := m.Get(ctx, col, "cfg")
	require.NoError(t, err)
	assert.EqualValues(t, 3, doc.Fields["a"])
	assert.NotContains(t, doc.Fields, "b")
}

func TestMemoryTenantIsolation(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	colA := Root("salons").Doc("salon-a").Collection("products")
	colB := Root("salons").Doc("salon-b").Collection("products")

	require.NoError(t, m.Put(ctx, colA, "p1", map[string]interface{}{"name": "A"}))
	require.NoError(t, m.Put(ctx, colB, "p2", map[string]interface{}{"name": "B"}))

	docs, err := m.Query(ctx, colA, nil, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "p1", docs[0].ID, "a tenant-scoped read never leaks another tenant's documents")

	group, err := m.QueryGroup(ctx, Group("products"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, group, 2, "the aggregate group scan sees every tenant")
}

func TestMemoryQueryFiltersAndSort(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("salons").Doc("s1").Collection("stylists")

	require.NoError(t, m.Put(ctx, col, "a", map[string]interface{}{"name": "Zoe", "status": "Active"}))
	require.NoError(t, m.Put(ctx, col, "b", map[string]interface{}{"name": "Amir", "status": "Active"}))
	require.NoError(t, m.Put(ctx, col, "c", map[string]interface{}{"name": "Mia", "status": "Inactive"}))

	docs, err := m.Query(ctx, col, []Filter{Eq("status", "Active")}, &Sort{Field: "name"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Amir", docs[0].Fields["name"])
	assert.Equal(t, "Zoe", docs[1].Fields["name"])
}

func TestMemoryDeleteGroup(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, Root("salons").Doc("a").Collection("sales"), "s1", map[string]interface{}{}))
	require.NoError(t, m.Put(ctx, Root("salons").Doc("b").Collection("sales"), "s2", map[string]interface{}{}))
	require.NoError(t, m.Put(ctx, Root("salons"), "a", map[string]interface{}{}))

	n, err := m.DeleteGroup(ctx, Group("sales"), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := m.QueryGroup(ctx, Group("sales"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, left)

	salons, err := m.Query(ctx, Root("salons"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, salons, 1, "other groups are untouched")
}

func TestMemoryListCollections(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, Root("salons"), "a", map[string]interface{}{}))
	require.NoError(t, m.Put(ctx, Root("salons").Doc("a").Collection("products"), "p1", map[string]interface{}{}))
	require.NoError(t, m.Put(ctx, Root("salon_managers"), "m1", map[string]interface{}{}))

	paths, err := m.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"salon_managers", "salons", "salons/a/products"}, paths)
}

func TestMemorySnapshotIsolation(t *testing.T) {
	m := NewMemory(nil)
	ctx := context.Background()
	col := Root("salons")

	require.NoError(t, m.Put(ctx, col, "s1", map[string]interface{}{"name": "Aurora"}))
	doc, err := m.Get(ctx, col, "s1")
	require.NoError(t, err)

	doc.Fields["name"] = "Mutated"
	again, err := m.Get(ctx, col, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Aurora", again.Fields["name"], "returned snapshots never alias stored state")
}

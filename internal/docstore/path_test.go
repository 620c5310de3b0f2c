package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathBuilding(t *testing.T) {
	col := Root("salons").Doc("salon-1").Collection("stylists").Doc("sty-1").Collection("clients")

	assert.Equal(t, "salons/salon-1/stylists/sty-1/clients", col.Path())
	assert.Equal(t, "clients", col.Leaf())
	assert.False(t, col.IsZero())
}

func TestRootPanicsOnInvalidName(t *testing.T) {
	assert.Panics(t, func() { Root("") })
	assert.Panics(t, func() { Root("a/b") })
	assert.Panics(t, func() { Root("salons").Doc("x/y") })
}

func TestDocRef(t *testing.T) {
	doc := Root("salons").Doc("salon-1")
	assert.Equal(t, "salon-1", doc.ID())
	assert.Equal(t, "salons", doc.Parent().Path())
}

func TestGroup(t *testing.T) {
	g := Group("products")
	assert.Equal(t, "products", g.Name())
	assert.Panics(t, func() { Group("") })
}

func TestParseCollectionPath(t *testing.T) {
	col, err := ParseCollectionPath("salons/salon-1/products")
	require.NoError(t, err)
	assert.Equal(t, "salons/salon-1/products", col.Path())
	assert.Equal(t, "products", col.Leaf())

	_, err = ParseCollectionPath("salons/salon-1")
	assert.Error(t, err, "even segment count is a document path, not a collection")

	_, err = ParseCollectionPath("salons//products")
	assert.Error(t, err)
}

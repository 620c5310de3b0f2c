package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/utils"
)

func TestPurgeRefusesWrongPhrase(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewPurgeService(store)

	for _, phrase := range []string{"", "delete all salon data", "DELETE ALL SALON DATA!"} {
		result, err := svc.Purge(ctx, phrase)
		assert.ErrorIs(t, err, utils.ErrConfirmMismatch)
		assert.Nil(t, result)
	}

	// Nothing was deleted.
	salons, err := store.Query(ctx, docstore.Root("salons"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, salons, 1)
}

func TestPurgeDeletesEverySalonGroup(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	// The super-admin singleton must survive a purge.
	require.NoError(t, store.Put(ctx, docstore.Root("super_admin_setting"), "root",
		map[string]interface{}{"email": "admin@strands.app"}))

	result, err := NewPurgeService(store).Purge(ctx, PurgeConfirmPhrase)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Failed)
	assert.Positive(t, result.Total)

	for _, group := range []string{"recommendations", "clients", "sales", "stylists", "settings", "products", "salons", "salon_managers"} {
		docs, err := store.QueryGroup(ctx, docstore.Group(group), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, docs, group)
		assert.Contains(t, result.Deleted, group)
	}

	admin, err := store.Get(ctx, docstore.Root("super_admin_setting"), "root")
	require.NoError(t, err)
	assert.NotNil(t, admin, "purge never touches the super-admin singleton")
}

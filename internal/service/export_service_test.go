package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/utils"
)

func seededStore(t *testing.T) docstore.Backend {
	t.Helper()
	store := docstore.NewMemory(nil)
	seeder := NewSeedService(store, forcedFixtures(), 1)
	forcePicks(seeder)
	require.NoError(t, seeder.Run(context.Background(), nil))
	return store
}

func TestExportJSONBundlesEveryTarget(t *testing.T) {
	svc := NewExportService(seededStore(t))

	raw, err := svc.ExportJSON(context.Background())
	require.NoError(t, err)

	var bundle map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &bundle))

	for _, name := range svc.TargetNames() {
		assert.Contains(t, bundle, name)
	}
	assert.Len(t, bundle["salons"], 1)
	assert.Len(t, bundle["products"], 3)
	assert.Len(t, bundle["sales"], 3)

	// Every row is serialized as {id, ...fields}.
	for _, row := range bundle["products"] {
		assert.NotEmpty(t, row["id"])
		assert.Contains(t, row, "price")
	}
}

func TestExportCSVScalarFieldsOnly(t *testing.T) {
	svc := NewExportService(seededStore(t))

	raw, err := svc.ExportCSV(context.Background(), "products")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	header := records[0]
	assert.Equal(t, "id", header[0], "id leads the header")
	assert.Contains(t, header, "name")
	assert.Contains(t, header, "price")
	assert.NotContains(t, header, "tags", "array fields are dropped, not flattened")
	assert.Len(t, records, 4, "header plus one row per product")
}

func TestExportCSVUnknownCollection(t *testing.T) {
	svc := NewExportService(docstore.NewMemory(nil))
	_, err := svc.ExportCSV(context.Background(), "not_a_collection")
	assert.ErrorIs(t, err, utils.ErrUnknownCollection)
}

func TestExportReseedSymmetry(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewExportService(store)

	first, err := svc.ExportJSON(ctx)
	require.NoError(t, err)
	var bundle map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(first, &bundle))

	// Wipe and manually re-seed the product group from the export.
	_, err = store.DeleteGroup(ctx, docstore.Group("products"), 100)
	require.NoError(t, err)
	col := docstore.Root("salons").Doc("salon-test").Collection("products")
	for _, row := range bundle["products"] {
		id := row["id"].(string)
		fields := make(map[string]interface{}, len(row))
		for k, v := range row {
			if k == "id" || k == "createdAt" || k == "updatedAt" {
				continue
			}
			fields[k] = v
		}
		require.NoError(t, store.Put(ctx, col, id, fields))
	}

	second, err := svc.ExportJSON(ctx)
	require.NoError(t, err)
	var rebundle map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(second, &rebundle))

	names := func(rows []map[string]interface{}) map[string]interface{} {
		out := make(map[string]interface{}, len(rows))
		for _, row := range rows {
			out[row["id"].(string)] = row["price"]
		}
		return out
	}
	assert.Equal(t, names(bundle["products"]), names(rebundle["products"]),
		"export, re-seed, export yields the same ids and scalar values")
}

func TestExportXLSXBuildsWorkbook(t *testing.T) {
	svc := NewExportService(seededStore(t))

	raw, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	// XLSX is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, raw[:2])
}

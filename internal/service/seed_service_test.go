package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
)

// forcedFixtures is the smallest dataset that exercises the rollup math: one
// salon, one stylist, three products priced 10/20/30.
func forcedFixtures() Fixtures {
	return Fixtures{
		Salons: []SalonFixture{{
			ID:      "salon-test",
			Name:    "Test Salon",
			Manager: ManagerFixture{ID: "mgr-test", Name: "Mgr", Email: "mgr@test.example", Password: "pw"},
			Products: []ProductFixture{
				{ID: "p0", Name: "Cheap", Price: 10, InitialStock: 50, Tags: []string{"a"}},
				{ID: "p1", Name: "Mid", Price: 20, InitialStock: 50},
				{ID: "p2", Name: "Dear", Price: 30, InitialStock: 50},
			},
			Stylists: []StylistFixture{{ID: "sty1", Name: "Solo"}},
		}},
	}
}

// forcePicks makes the engine always choose the first product with quantity 2
// and exactly 3 clients per stylist.
func forcePicks(s *SeedService) {
	s.SetChoosers(
		func(n int) int { return 0 },
		func(min, max int) int {
			if min == 1 && max == 3 {
				return 2 // quantity
			}
			return 3 // client count
		},
	)
}

func TestGenerateForcedPicks(t *testing.T) {
	seeder := NewSeedService(docstore.NewMemory(nil), forcedFixtures(), 1)
	forcePicks(seeder)

	ds := seeder.Generate()
	require.Len(t, ds.Salons, 1)
	sal := ds.Salons[0]
	require.Len(t, sal.Stylists, 1)
	require.Len(t, sal.Sales, 3)

	sty := sal.Stylists[0].Stylist
	assert.Equal(t, float64(60), sty.TotalSales)
	assert.Equal(t, 6, sty.UnitsSold)
	assert.Equal(t, 3, sty.ClientsCount)
	assert.Equal(t, 3, sty.ScansCount)

	assert.Equal(t, 6, sal.Products[0].UnitsSold)
	assert.Equal(t, float64(60), sal.Products[0].TotalRevenue)
	assert.Equal(t, 44, sal.Products[0].Inventory)
	assert.Equal(t, 0, sal.Products[1].UnitsSold)
	assert.Equal(t, float64(0), sal.Products[1].TotalRevenue)
	assert.Equal(t, 50, sal.Products[1].Inventory)

	// Client ids follow the synthetic c-{stylistID}-{n} shape and the sales
	// hit the first three clients in order.
	assert.Equal(t, "c-sty1-1", sal.Stylists[0].Clients[0].ID)
	assert.Equal(t, "c-sty1-1", sal.Sales[0].ClientID)
	assert.Equal(t, "c-sty1-3", sal.Sales[2].ClientID)

	// Each sale pairs with one recommendation for the same product, sold.
	recs := sal.Stylists[0].Recommendations
	require.Len(t, recs, 3)
	for _, rec := range recs {
		require.Len(t, rec.Items, 1)
		assert.Equal(t, "p0", rec.Items[0].ProductID)
		assert.True(t, rec.Items[0].Sold)
	}
}

func TestGenerateRollupConsistency(t *testing.T) {
	seeder := NewSeedService(docstore.NewMemory(nil), DefaultFixtures(), 42)
	ds := seeder.Generate()

	for _, sal := range ds.Salons {
		salesByStylist := make(map[string]float64)
		unitsByStylist := make(map[string]int)
		revenueByProduct := make(map[string]float64)
		unitsByProduct := make(map[string]int)
		for _, sale := range sal.Sales {
			salesByStylist[sale.StylistID] += sale.Total
			for _, item := range sale.Items {
				unitsByStylist[sale.StylistID] += item.Quantity
				revenueByProduct[item.ProductID] += item.Price * float64(item.Quantity)
				unitsByProduct[item.ProductID] += item.Quantity
			}
		}
		for _, sty := range sal.Stylists {
			assert.Equal(t, salesByStylist[sty.Stylist.ID], sty.Stylist.TotalSales, sty.Stylist.ID)
			assert.Equal(t, unitsByStylist[sty.Stylist.ID], sty.Stylist.UnitsSold, sty.Stylist.ID)
			assert.Equal(t, len(sty.Clients), sty.Stylist.ClientsCount)
		}
		for _, p := range sal.Products {
			assert.Equal(t, revenueByProduct[p.ID], p.TotalRevenue, p.ID)
			assert.Equal(t, unitsByProduct[p.ID], p.UnitsSold, p.ID)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := NewSeedService(docstore.NewMemory(nil), DefaultFixtures(), 7).Generate()
	b := NewSeedService(docstore.NewMemory(nil), DefaultFixtures(), 7).Generate()
	assert.Equal(t, a, b, "the same seed must reproduce the same dataset")
}

func TestRunReplaysAndReportsProgress(t *testing.T) {
	store := docstore.NewMemory(nil)
	seeder := NewSeedService(store, forcedFixtures(), 1)
	forcePicks(seeder)

	var events []ProgressEvent
	require.NoError(t, seeder.Run(context.Background(), func(ev ProgressEvent) {
		events = append(events, ev)
	}))

	require.NotEmpty(t, events)
	assert.Equal(t, SeedStatusSeeding, events[0].Status)
	assert.Equal(t, SeedStatusComplete, events[len(events)-1].Status)
	for _, ev := range events {
		assert.NotEqual(t, SeedStatusError, ev.Status)
	}

	ctx := context.Background()

	salons, err := store.Query(ctx, docstore.Root("salons"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, salons, 1)

	sales, err := store.QueryGroup(ctx, docstore.Group("sales"), nil, nil)
	require.NoError(t, err)
	assert.Len(t, sales, 3)

	// The replayed stylist carries the generated rollups.
	doc, err := store.Get(ctx, docstore.Root("salons").Doc("salon-test").Collection("stylists"), "sty1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	var sty models.Stylist
	require.NoError(t, doc.Decode(&sty))
	assert.Equal(t, float64(60), sty.TotalSales)

	// Managers are stored with a hash, never the plaintext password.
	mgr, err := store.Get(ctx, docstore.Root("salon_managers"), "mgr-test")
	require.NoError(t, err)
	require.NotNil(t, mgr)
	assert.NotContains(t, mgr.Fields, "password")
	assert.NotEqual(t, "pw", mgr.Fields["passwordHash"])
	assert.NotEmpty(t, mgr.Fields["passwordHash"])
}

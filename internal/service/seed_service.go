package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/utils"
)

// SeedStatus is the lifecycle of one progress event.
type SeedStatus string

const (
	SeedStatusSeeding  SeedStatus = "seeding"
	SeedStatusSuccess  SeedStatus = "success"
	SeedStatusError    SeedStatus = "error"
	SeedStatusComplete SeedStatus = "complete"
)

// ProgressEvent is emitted after each logical replay batch, not after every
// document.
type ProgressEvent struct {
	Status  SeedStatus `json:"status"`
	Label   string     `json:"label"`
	Current int        `json:"current,omitempty"`
	Total   int        `json:"total,omitempty"`
	Count   int        `json:"count,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// ProgressFunc receives replay progress. May be nil.
type ProgressFunc func(ProgressEvent)

// saleDate anchors generated sale/join dates so repeated runs with the same
// random seed produce identical documents.
var saleDate = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

// SeedService expands fixture templates into a consistent multi-tenant demo
// dataset and replays it into the store. Generation is deterministic for a
// fixed random seed; the per-stylist and per-product aggregates it writes
// always match the sales it generates.
type SeedService struct {
	store    docstore.Backend
	fixtures Fixtures

	// pickIndex and pickRange are the engine's only randomness. Swappable so
	// a caller can force specific picks.
	pickIndex func(n int) int
	pickRange func(min, max int) int

	mu      sync.Mutex
	running bool
}

// NewSeedService creates a seeder over the given backend. The same seed value
// always yields the same dataset.
func NewSeedService(store docstore.Backend, fixtures Fixtures, seed int64) *SeedService {
	rng := rand.New(rand.NewSource(seed))
	return &SeedService{
		store:    store,
		fixtures: fixtures,
		pickIndex: func(n int) int {
			return rng.Intn(n)
		},
		pickRange: func(min, max int) int {
			return min + rng.Intn(max-min+1)
		},
	}
}

// SetChoosers replaces the random pick functions. Test hook.
func (s *SeedService) SetChoosers(pickIndex func(n int) int, pickRange func(min, max int) int) {
	s.pickIndex = pickIndex
	s.pickRange = pickRange
}

// SeededStylist is one generated stylist with its nested documents.
type SeededStylist struct {
	Stylist         models.Stylist
	Clients         []models.Client
	Recommendations []models.Recommendation
}

// SeededSalon is one generated tenant tree.
type SeededSalon struct {
	Salon    models.Salon
	Manager  models.Manager
	Password string
	Profile  models.SalonProfile
	Config   models.AppConfig
	Products []models.Product
	Sales    []models.Sale
	Stylists []SeededStylist
}

// Dataset is the full generated output, ready for replay.
type Dataset struct {
	PlatformConfig models.AppConfig
	Salons         []SeededSalon
}

// Generate expands the fixtures into a dataset. Per stylist it invents a
// bounded-random number of clients; the first 3 clients of each stylist get
// exactly one sale and one recommendation against a random in-tenant product.
// Rollups are accumulated as sales are synthesized so the emitted stylists
// and products agree exactly with the emitted sales.
func (s *SeedService) Generate() Dataset {
	ds := Dataset{PlatformConfig: s.fixtures.PlatformConfig}
	ds.PlatformConfig.ID = repository.DocPlatformConfig

	for _, sf := range s.fixtures.Salons {
		seeded := SeededSalon{
			Salon: models.Salon{
				ID:        sf.ID,
				Name:      sf.Name,
				ManagerID: sf.Manager.ID,
				Phone:     sf.Phone,
				Address:   sf.Address,
			},
			Manager: models.Manager{
				ID:       sf.Manager.ID,
				Name:     sf.Manager.Name,
				Email:    sf.Manager.Email,
				Phone:    sf.Manager.Phone,
				SalonID:  sf.ID,
				IsActive: true,
			},
			Password: sf.Manager.Password,
			Profile:  sf.Profile,
			Config:   sf.Config,
		}
		seeded.Profile.ID = repository.DocProfile
		seeded.Config.ID = repository.DocAppConfig

		// Side tables keyed by index/id, folded into the documents at the end.
		products := make([]models.Product, len(sf.Products))
		initialStock := make([]int, len(sf.Products))
		for i, pf := range sf.Products {
			products[i] = models.Product{
				ID:     pf.ID,
				Name:   pf.Name,
				Price:  pf.Price,
				Active: true,
				Tags:   pf.Tags,
			}
			initialStock[i] = pf.InitialStock
		}

		for _, stf := range sf.Stylists {
			sty := SeededStylist{
				Stylist: models.Stylist{
					ID:     stf.ID,
					Name:   stf.Name,
					Bio:    stf.Bio,
					Skills: stf.Skills,
					Status: models.StylistActive,
				},
			}

			clientCount := s.pickRange(3, 8)
			for n := 1; n <= clientCount; n++ {
				sty.Clients = append(sty.Clients, models.Client{
					ID:       fmt.Sprintf("c-%s-%d", stf.ID, n),
					Name:     fmt.Sprintf("Client %d of %s", n, stf.Name),
					Email:    fmt.Sprintf("c-%s-%d@clients.example", stf.ID, n),
					JoinedAt: saleDate.AddDate(0, 0, -n*7),
				})
			}
			sty.Stylist.ClientsCount = clientCount

			// Exactly one sale + one recommendation for each of the first 3
			// clients.
			saleClients := 3
			if clientCount < saleClients {
				saleClients = clientCount
			}
			for i := 0; i < saleClients; i++ {
				pi := s.pickIndex(len(products))
				qty := s.pickRange(1, 3)
				p := &products[pi]
				total := p.Price * float64(qty)
				client := sty.Clients[i]

				seeded.Sales = append(seeded.Sales, models.Sale{
					ID:        fmt.Sprintf("sale-%s-%d", stf.ID, i+1),
					StylistID: stf.ID,
					ClientID:  client.ID,
					Items: []models.SaleItem{
						{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty},
					},
					Total: total,
					Date:  saleDate.AddDate(0, 0, -i),
				})
				sty.Recommendations = append(sty.Recommendations, models.Recommendation{
					ID:       fmt.Sprintf("rec-%s-%d", stf.ID, i+1),
					ClientID: client.ID,
					Analysis: models.HairAnalysis{HairType: "Wavy", Condition: "Dry", Porosity: "Medium"},
					Items: []models.RecommendationItem{
						{ProductID: p.ID, Score: 0.92, Sold: true},
					},
				})

				sty.Stylist.TotalSales += total
				sty.Stylist.UnitsSold += qty
				p.TotalRevenue += total
				p.UnitsSold += qty
			}
			sty.Stylist.ScansCount = len(sty.Recommendations)

			seeded.Stylists = append(seeded.Stylists, sty)
		}

		for i := range products {
			products[i].Inventory = initialStock[i] - products[i].UnitsSold
		}
		seeded.Products = products

		ds.Salons = append(ds.Salons, seeded)
	}
	return ds
}

// Run generates the dataset and replays it into the store, reporting progress
// per logical batch. A failed batch aborts the remaining steps without
// rolling back what was already written. Only one run may be active at a
// time.
func (s *SeedService) Run(ctx context.Context, progress ProgressFunc) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return utils.ErrSeedInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	ds := s.Generate()

	type step struct {
		label string
		run   func(context.Context) (int, error)
	}

	steps := []step{
		{"Platform configuration", func(ctx context.Context) (int, error) {
			return 1, s.putDoc(ctx, repository.PlatformSettingsCol(), repository.DocPlatformConfig, ds.PlatformConfig)
		}},
		{"Managers", func(ctx context.Context) (int, error) {
			count := 0
			for _, sal := range ds.Salons {
				m := sal.Manager
				hashed, err := bcrypt.GenerateFromPassword([]byte(sal.Password), bcrypt.DefaultCost)
				if err != nil {
					return count, err
				}
				m.PasswordHash = string(hashed)
				if err := s.putDoc(ctx, repository.ManagersCol(), m.ID, m); err != nil {
					return count, err
				}
				count++
			}
			return count, nil
		}},
	}
	for i := range ds.Salons {
		sal := &ds.Salons[i]
		steps = append(steps, step{"Salon " + sal.Salon.Name, func(ctx context.Context) (int, error) {
			return s.replaySalon(ctx, sal)
		}})
	}

	total := len(steps)
	for i, st := range steps {
		progress(ProgressEvent{Status: SeedStatusSeeding, Label: st.label, Current: i + 1, Total: total})
		count, err := st.run(ctx)
		if err != nil {
			log.Error().Err(err).Str("step", st.label).Msg("seed replay failed")
			progress(ProgressEvent{Status: SeedStatusError, Label: st.label, Current: i + 1, Total: total, Error: err.Error()})
			return err
		}
		progress(ProgressEvent{Status: SeedStatusSuccess, Label: st.label, Current: i + 1, Total: total, Count: count})
	}

	log.Info().Int("salons", len(ds.Salons)).Msg("seed replay complete")
	progress(ProgressEvent{Status: SeedStatusComplete, Label: "Seeding complete", Current: total, Total: total})
	return nil
}

// replaySalon writes one tenant tree in dependency order: profile and config
// before the catalog, sales before the stylists that reference them, nested
// clients and recommendations last.
func (s *SeedService) replaySalon(ctx context.Context, sal *SeededSalon) (int, error) {
	count := 0
	write := func(col docstore.CollectionRef, id string, v interface{}) error {
		if err := s.putDoc(ctx, col, id, v); err != nil {
			return err
		}
		count++
		return nil
	}

	if err := write(repository.SalonsCol(), sal.Salon.ID, sal.Salon); err != nil {
		return count, err
	}
	if err := write(repository.SalonSettingsCol(sal.Salon.ID), repository.DocProfile, sal.Profile); err != nil {
		return count, err
	}
	if err := write(repository.SalonSettingsCol(sal.Salon.ID), repository.DocAppConfig, sal.Config); err != nil {
		return count, err
	}
	for _, p := range sal.Products {
		if err := write(repository.ProductsCol(sal.Salon.ID), p.ID, p); err != nil {
			return count, err
		}
	}
	for _, sale := range sal.Sales {
		if err := write(repository.SalesCol(sal.Salon.ID), sale.ID, sale); err != nil {
			return count, err
		}
	}
	for _, sty := range sal.Stylists {
		if err := write(repository.StylistsCol(sal.Salon.ID), sty.Stylist.ID, sty.Stylist); err != nil {
			return count, err
		}
		for _, c := range sty.Clients {
			if err := write(repository.ClientsCol(sal.Salon.ID, sty.Stylist.ID), c.ID, c); err != nil {
				return count, err
			}
		}
		for _, rec := range sty.Recommendations {
			if err := write(repository.RecommendationsCol(sal.Salon.ID, sty.Stylist.ID), rec.ID, rec); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

func (s *SeedService) putDoc(ctx context.Context, col docstore.CollectionRef, id string, v interface{}) error {
	fields, err := docstore.FieldsOf(v)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, col, id, fields)
}

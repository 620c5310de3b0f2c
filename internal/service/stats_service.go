package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/cache"
	"github.com/strandshq/strands-api/internal/repository"
)

// StatsService computes the platform-wide dashboard aggregates via
// cross-tenant collection-group scans and caches the result in redis.
type StatsService struct {
	salons          *repository.SalonRepository
	managers        *repository.ManagerRepository
	stylists        *repository.StylistRepository
	products        *repository.ProductRepository
	sales           *repository.SaleRepository
	recommendations *repository.RecommendationRepository
	statsCache      *cache.StatsCache
}

// NewStatsService creates a new StatsService. statsCache may be nil, in which
// case every read recomputes.
func NewStatsService(
	salons *repository.SalonRepository,
	managers *repository.ManagerRepository,
	stylists *repository.StylistRepository,
	products *repository.ProductRepository,
	sales *repository.SaleRepository,
	recommendations *repository.RecommendationRepository,
	statsCache *cache.StatsCache,
) *StatsService {
	return &StatsService{
		salons:          salons,
		managers:        managers,
		stylists:        stylists,
		products:        products,
		sales:           sales,
		recommendations: recommendations,
		statsCache:      statsCache,
	}
}

// Get returns dashboard stats, serving from cache when fresh.
func (s *StatsService) Get(ctx context.Context) (*cache.DashboardStats, error) {
	if s.statsCache != nil {
		if cached, _ := s.statsCache.Get(ctx); cached != nil {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the aggregates from the store and repopulates the cache.
func (s *StatsService) Refresh(ctx context.Context) (*cache.DashboardStats, error) {
	salons, err := s.salons.List(ctx)
	if err != nil {
		return nil, err
	}
	managers, err := s.managers.List(ctx)
	if err != nil {
		return nil, err
	}
	stylists, err := s.stylists.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.recommendations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &cache.DashboardStats{
		Salons:     len(salons),
		Managers:   len(managers),
		Stylists:   len(stylists),
		Products:   len(products),
		SalesCount: len(sales),
		ComputedAt: time.Now().UTC(),
	}
	for _, sale := range sales {
		stats.Revenue += sale.Total
	}

	// Conversion rate: share of recommended items that converted to a sale.
	var recommended, sold int
	for _, rec := range recs {
		for _, item := range rec.Items {
			recommended++
			if item.Sold {
				sold++
			}
		}
	}
	stats.Scans = len(recs)
	if recommended > 0 {
		stats.ConversionRate = float64(sold) / float64(recommended)
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, stats); err != nil {
			log.Warn().Err(err).Msg("failed to cache dashboard stats")
		}
	}
	return stats, nil
}

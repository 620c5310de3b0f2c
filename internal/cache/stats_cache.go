package cache

import (
	"context"
	"encoding/json"
	"time"
)

// DashboardStats holds the platform-wide aggregates shown on the super-admin
// dashboard. These are cached rollups, recomputed by the stats worker, not a
// live materialized view.
type DashboardStats struct {
	Salons         int       `json:"salons"`
	Managers       int       `json:"managers"`
	Stylists       int       `json:"stylists"`
	Products       int       `json:"products"`
	SalesCount     int       `json:"salesCount"`
	Revenue        float64   `json:"revenue"`
	Scans          int       `json:"scans"`
	ConversionRate float64   `json:"conversionRate"`
	ComputedAt     time.Time `json:"computedAt"`
}

// StatsCache provides dashboard stats caching operations.
type StatsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(redis *RedisClient, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{redis: redis, ttl: ttl}
}

func (c *StatsCache) key() string {
	return "stats:dashboard"
}

// Set stores the stats with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats *DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, c.key(), string(raw), c.ttl)
}

// Get retrieves cached stats. Returns (nil, nil) on a cache miss.
func (c *StatsCache) Get(ctx context.Context) (*DashboardStats, error) {
	raw, err := c.redis.Get(ctx, c.key())
	if err != nil {
		return nil, nil // treat miss and transient errors alike: recompute
	}
	var stats DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, nil
	}
	return &stats, nil
}

// Invalidate drops the cached stats.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, c.key())
}

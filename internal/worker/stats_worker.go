package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/service"
)

// StatsWorker periodically recomputes the dashboard aggregates so the cached
// rollups stay close to the store.
type StatsWorker struct {
	statsService *service.StatsService
	interval     time.Duration
}

// NewStatsWorker constructs a StatsWorker.
func NewStatsWorker(statsService *service.StatsService, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		statsService: statsService,
		interval:     interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *StatsWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting stats worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Stats worker stopped")
			return
		}
	}
}

func (w *StatsWorker) run(ctx context.Context) {
	start := time.Now()
	stats, err := w.statsService.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh dashboard stats")
		return
	}
	log.Info().
		Dur("duration", time.Since(start)).
		Int("salons", stats.Salons).
		Int("sales", stats.SalesCount).
		Msg("Dashboard stats refreshed")
}

package handler

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// SeedHandler replays the demo dataset, streaming progress over SSE
// (super-admin only).
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler constructs a SeedHandler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed handles POST /v1/admin/seed
//
// The response is an SSE stream of progress events, one per logical batch,
// closing after the complete (or error) event.
func (h *SeedHandler) Seed(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := make(chan service.ProgressEvent, 16)
	done := make(chan error, 1)
	go func() {
		defer close(events)
		done <- h.seedService.Run(c.Request.Context(), func(ev service.ProgressEvent) {
			events <- ev
		})
	}()

	for ev := range events {
		raw, err := json.Marshal(ev)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal seed progress")
			continue
		}
		c.SSEvent("progress", string(raw))
		c.Writer.Flush()
	}

	if err := <-done; err != nil && !errors.Is(err, utils.ErrSeedInProgress) {
		log.Error().Err(err).Msg("seed run failed")
	}
}

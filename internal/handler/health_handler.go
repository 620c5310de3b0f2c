package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/strandshq/strands-api/internal/docstore"
	"github.com/strandshq/strands-api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db      *sqlx.DB
	watcher *docstore.Watcher
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, watcher *docstore.Watcher) *HealthHandler {
	return &HealthHandler{db: db, watcher: watcher}
}

// GetHealth responds with service and database status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "connected"
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "disconnected"
		}
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":        "healthy",
		"version":       "1.0.0",
		"uptime":        int(time.Since(startTime).Seconds()),
		"database":      dbStatus,
		"subscriptions": h.watcher.SubscriptionCount(),
	})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// DashboardHandler serves the platform-wide aggregates (super-admin only).
type DashboardHandler struct {
	statsService *service.StatsService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// Stats handles GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Dashboard stats retrieved", stats)
}

// Refresh handles POST /v1/dashboard/stats/refresh
func (h *DashboardHandler) Refresh(c *gin.Context) {
	stats, err := h.statsService.Refresh(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Dashboard stats recomputed", stats)
}

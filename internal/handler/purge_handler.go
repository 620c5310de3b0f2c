package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// PurgeHandler performs the confirmed cross-tenant wipe (super-admin only).
type PurgeHandler struct {
	purgeService *service.PurgeService
}

// NewPurgeHandler constructs a PurgeHandler.
func NewPurgeHandler(purgeService *service.PurgeService) *PurgeHandler {
	return &PurgeHandler{purgeService: purgeService}
}

// Purge handles POST /v1/admin/purge
//
// The request body must carry the exact confirmation phrase; anything else is
// refused before the first delete.
func (h *PurgeHandler) Purge(c *gin.Context) {
	var req struct {
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "confirmation is required")
		return
	}

	result, err := h.purgeService.Purge(c.Request.Context(), req.Confirmation)
	if err != nil {
		if result != nil {
			// Partial purge: report what was deleted alongside the failure.
			utils.Success(c, 207, "Purge aborted mid-operation", result)
			return
		}
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "All salon data purged", result)
}

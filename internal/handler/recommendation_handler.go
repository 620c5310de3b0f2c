package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// RecommendationHandler handles the append-only AI recommendation log.
// Entries are created and listed, never updated.
type RecommendationHandler struct {
	recommendations *repository.RecommendationRepository
}

// NewRecommendationHandler constructs a RecommendationHandler.
func NewRecommendationHandler(recommendations *repository.RecommendationRepository) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// List handles GET /v1/stylists/:stylistId/recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	sc := middleware.GetScope(c)
	if sc.Kind == scope.KindAggregate {
		recs, err := h.recommendations.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		utils.Success(c, 200, "Recommendations retrieved", recs)
		return
	}

	recs, err := h.recommendations.List(c.Request.Context(), sc.SalonID, c.Param("stylistId"))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Recommendations retrieved", recs)
}

// Create handles POST /v1/stylists/:stylistId/recommendations
func (h *RecommendationHandler) Create(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var rec models.Recommendation
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if rec.ClientID == "" || len(rec.Items) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "clientId and items are required")
		return
	}
	id, err := h.recommendations.Create(c.Request.Context(), salonID, c.Param("stylistId"), &rec)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Recommendation recorded", gin.H{"id": id})
}

// Delete handles DELETE /v1/stylists/:stylistId/recommendations/:id
//
// Cleanup affordance only.
func (h *RecommendationHandler) Delete(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if err := h.recommendations.Delete(c.Request.Context(), salonID, c.Param("stylistId"), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Recommendation deleted", nil)
}

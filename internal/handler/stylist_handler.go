package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// StylistHandler handles stylist HTTP endpoints.
type StylistHandler struct {
	stylists *repository.StylistRepository
}

// NewStylistHandler constructs a StylistHandler.
func NewStylistHandler(stylists *repository.StylistRepository) *StylistHandler {
	return &StylistHandler{stylists: stylists}
}

// List handles GET /v1/stylists
//
// Salon scope lists the tenant roster; aggregate scope scans the collection
// group across all tenants.
func (h *StylistHandler) List(c *gin.Context) {
	sc := middleware.GetScope(c)
	status := models.StylistStatus(c.Query("status"))

	if sc.Kind == scope.KindAggregate {
		stylists, err := h.stylists.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		utils.Success(c, 200, "Stylists retrieved", stylists)
		return
	}

	stylists, err := h.stylists.List(c.Request.Context(), sc.SalonID, status)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Stylists retrieved", stylists)
}

// Get handles GET /v1/stylists/:stylistId
func (h *StylistHandler) Get(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	stylist, err := h.stylists.Get(c.Request.Context(), salonID, c.Param("stylistId"))
	if err != nil {
		handleError(c, err)
		return
	}
	if stylist == nil {
		utils.Error(c, 404, "NOT_FOUND", "Stylist not found")
		return
	}
	utils.Success(c, 200, "Stylist retrieved", stylist)
}

// Create handles POST /v1/stylists
func (h *StylistHandler) Create(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var stylist models.Stylist
	if err := c.ShouldBindJSON(&stylist); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if stylist.Status == "" {
		stylist.Status = models.StylistActive
	}
	id, err := h.stylists.Create(c.Request.Context(), salonID, &stylist)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Stylist created", gin.H{"id": id})
}

// Update handles PATCH /v1/stylists/:stylistId
func (h *StylistHandler) Update(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.stylists.Update(c.Request.Context(), salonID, c.Param("stylistId"), patch); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Stylist updated", nil)
}

// Delete handles DELETE /v1/stylists/:stylistId
//
// Nested clients and recommendations are left in place; nothing cascades.
func (h *StylistHandler) Delete(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if err := h.stylists.Delete(c.Request.Context(), salonID, c.Param("stylistId")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Stylist deleted", nil)
}

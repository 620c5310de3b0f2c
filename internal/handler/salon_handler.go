package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// SalonHandler handles tenant directory HTTP endpoints.
type SalonHandler struct {
	salons *repository.SalonRepository
}

// NewSalonHandler constructs a SalonHandler.
func NewSalonHandler(salons *repository.SalonRepository) *SalonHandler {
	return &SalonHandler{salons: salons}
}

// List handles GET /v1/salons (super-admin directory).
func (h *SalonHandler) List(c *gin.Context) {
	salons, err := h.salons.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Salons retrieved", salons)
}

// Get handles GET /v1/salons/:id
//
// A manager may only read their own salon; the super-admin may read any.
func (h *SalonHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sess := middleware.GetSession(c)
	if sess.Role == scope.RoleManager && sess.SalonID != id {
		utils.Error(c, 403, "TENANT_FORBIDDEN", "Not authorized for the requested salon")
		return
	}

	salon, err := h.salons.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	if salon == nil {
		utils.Error(c, 404, "NOT_FOUND", "Salon not found")
		return
	}
	utils.Success(c, 200, "Salon retrieved", salon)
}

// Create handles POST /v1/salons (super-admin onboarding).
func (h *SalonHandler) Create(c *gin.Context) {
	var salon models.Salon
	if err := c.ShouldBindJSON(&salon); err != nil || salon.Name == "" {
		utils.Error(c, 400, "MISSING_FIELD", "Salon name is required")
		return
	}
	id, err := h.salons.Create(c.Request.Context(), &salon)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Salon created", gin.H{"id": id})
}

// Update handles PATCH /v1/salons/:id
//
// The resolved scope must match the target salon: managers edit their own
// tenant, the super-admin impersonates via the salonId parameter.
func (h *SalonHandler) Update(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if salonID != c.Param("id") {
		utils.Error(c, 403, "TENANT_FORBIDDEN", "Scope does not match the target salon")
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.salons.Update(c.Request.Context(), salonID, patch); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Salon updated", nil)
}

// Delete handles DELETE /v1/salons/:id (super-admin).
//
// Deletes the salon document only. The manager and nested collections are
// separate explicit deletes; only the purge engine removes whole trees.
func (h *SalonHandler) Delete(c *gin.Context) {
	if err := h.salons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Salon deleted", nil)
}

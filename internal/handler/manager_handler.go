package handler

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// ManagerHandler handles the manager directory (super-admin only). Password
// hashes never leave the handler.
type ManagerHandler struct {
	managers    *repository.ManagerRepository
	authService *service.AuthService
}

// NewManagerHandler constructs a ManagerHandler.
func NewManagerHandler(managers *repository.ManagerRepository, authService *service.AuthService) *ManagerHandler {
	return &ManagerHandler{managers: managers, authService: authService}
}

// List handles GET /v1/managers
func (h *ManagerHandler) List(c *gin.Context) {
	managers, err := h.managers.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	for i := range managers {
		managers[i].PasswordHash = ""
	}
	utils.Success(c, 200, "Managers retrieved", managers)
}

// Get handles GET /v1/managers/:id
func (h *ManagerHandler) Get(c *gin.Context) {
	manager, err := h.managers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if manager == nil {
		utils.Error(c, 404, "NOT_FOUND", "Manager not found")
		return
	}
	manager.PasswordHash = ""
	utils.Success(c, 200, "Manager retrieved", manager)
}

// Create handles POST /v1/managers
func (h *ManagerHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Phone    string `json:"phone"`
		SalonID  string `json:"salonId" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "name, email, salonId, and password are required")
		return
	}

	existing, err := h.managers.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		handleError(c, err)
		return
	}
	if existing != nil {
		utils.Error(c, 409, "EMAIL_TAKEN", "A manager with this email already exists")
		return
	}

	manager := models.Manager{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		SalonID: req.SalonID,
	}
	id, err := h.authService.CreateManager(c.Request.Context(), &manager, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Manager created", gin.H{"id": id})
}

// Update handles PATCH /v1/managers/:id
//
// A `password` field in the patch is hashed and stored as passwordHash; raw
// passwords are never written.
func (h *ManagerHandler) Update(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	delete(patch, "passwordHash")
	if raw, ok := patch["password"].(string); ok {
		if raw == "" {
			utils.Error(c, 400, "MISSING_FIELD", "password must not be empty")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			handleError(c, err)
			return
		}
		delete(patch, "password")
		patch["passwordHash"] = string(hashed)
	}

	if err := h.managers.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Manager updated", nil)
}

// Delete handles DELETE /v1/managers/:id
//
// The manager's salon is a separate explicit delete; nothing cascades.
func (h *ManagerHandler) Delete(c *gin.Context) {
	if err := h.managers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Manager deleted", nil)
}

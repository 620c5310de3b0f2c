package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// ClientHandler handles client-book HTTP endpoints, nested under a stylist.
type ClientHandler struct {
	clients *repository.ClientRepository
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clients *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /v1/stylists/:stylistId/clients
func (h *ClientHandler) List(c *gin.Context) {
	sc := middleware.GetScope(c)
	if sc.Kind == scope.KindAggregate {
		clients, err := h.clients.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		utils.Success(c, 200, "Clients retrieved", clients)
		return
	}

	clients, err := h.clients.List(c.Request.Context(), sc.SalonID, c.Param("stylistId"))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Clients retrieved", clients)
}

// Get handles GET /v1/stylists/:stylistId/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), salonID, c.Param("stylistId"), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if client == nil {
		utils.Error(c, 404, "NOT_FOUND", "Client not found")
		return
	}
	utils.Success(c, 200, "Client retrieved", client)
}

// Create handles POST /v1/stylists/:stylistId/clients
func (h *ClientHandler) Create(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if client.JoinedAt.IsZero() {
		client.JoinedAt = time.Now().UTC()
	}
	id, err := h.clients.Create(c.Request.Context(), salonID, c.Param("stylistId"), &client)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Client created", gin.H{"id": id})
}

// Update handles PATCH /v1/stylists/:stylistId/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.clients.Update(c.Request.Context(), salonID, c.Param("stylistId"), c.Param("id"), patch); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Client updated", nil)
}

// Delete handles DELETE /v1/stylists/:stylistId/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), salonID, c.Param("stylistId"), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Client deleted", nil)
}

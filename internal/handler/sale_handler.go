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

// SaleHandler handles the sales ledger HTTP endpoints. Sales are immutable
// once recorded: there is no update route.
type SaleHandler struct {
	sales *repository.SaleRepository
}

// NewSaleHandler constructs a SaleHandler.
func NewSaleHandler(sales *repository.SaleRepository) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// List handles GET /v1/sales
//
// Aggregate scope feeds the super-admin activity feed; salon scope optionally
// narrows to one stylist.
func (h *SaleHandler) List(c *gin.Context) {
	sc := middleware.GetScope(c)

	if sc.Kind == scope.KindAggregate {
		sales, err := h.sales.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		utils.Success(c, 200, "Sales retrieved", sales)
		return
	}

	sales, err := h.sales.List(c.Request.Context(), sc.SalonID, c.Query("stylistId"))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Sales retrieved", sales)
}

// Get handles GET /v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	sale, err := h.sales.Get(c.Request.Context(), salonID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if sale == nil {
		utils.Error(c, 404, "NOT_FOUND", "Sale not found")
		return
	}
	utils.Success(c, 200, "Sale retrieved", sale)
}

// Create handles POST /v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if sale.StylistID == "" || len(sale.Items) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "stylistId and items are required")
		return
	}
	if sale.Date.IsZero() {
		sale.Date = time.Now().UTC()
	}
	if sale.Total == 0 {
		for _, item := range sale.Items {
			sale.Total += item.Price * float64(item.Quantity)
		}
	}
	id, err := h.sales.Create(c.Request.Context(), salonID, &sale)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Sale recorded", gin.H{"id": id})
}

// Delete handles DELETE /v1/sales/:id
//
// Cleanup affordance only; the console never edits a recorded sale.
func (h *SaleHandler) Delete(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if err := h.sales.Delete(c.Request.Context(), salonID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Sale deleted", nil)
}

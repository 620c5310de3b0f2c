package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// ProductHandler handles product catalog HTTP endpoints.
type ProductHandler struct {
	products *repository.ProductRepository
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	sc := middleware.GetScope(c)

	if sc.Kind == scope.KindAggregate {
		products, err := h.products.ListAll(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		utils.Success(c, 200, "Products retrieved", products)
		return
	}

	activeOnly := c.Query("active") == "true"
	products, err := h.products.List(c.Request.Context(), sc.SalonID, activeOnly)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Products retrieved", products)
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), salonID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if product == nil {
		utils.Error(c, 404, "NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// Create handles POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	id, err := h.products.Create(c.Request.Context(), salonID, &product)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", gin.H{"id": id})
}

// Update handles PATCH /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}
	if err := h.products.Update(c.Request.Context(), salonID, c.Param("id"), patch); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", nil)
}

// Delete handles DELETE /v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), salonID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

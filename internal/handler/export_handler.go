package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// ExportHandler serves full-database downloads (super-admin only).
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /v1/admin/export?format=json|csv|xlsx
//
// CSV additionally needs ?collection=<name>; one collection per file.
func (h *ExportHandler) Export(c *gin.Context) {
	stamp := time.Now().UTC().Format("2006-01-02")

	switch c.DefaultQuery("format", "json") {
	case "json":
		data, err := h.exportService.ExportJSON(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="export-%s.json"`, stamp))
		c.Data(200, "application/json", data)

	case "csv":
		name := c.Query("collection")
		if name == "" {
			utils.Error(c, 400, "MISSING_FIELD", "collection is required for csv export")
			return
		}
		data, err := h.exportService.ExportCSV(c.Request.Context(), name)
		if err != nil {
			handleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.csv"`, name, stamp))
		c.Data(200, "text/csv", data)

	case "xlsx":
		data, err := h.exportService.ExportXLSX(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="export-%s.xlsx"`, stamp))
		c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		utils.Error(c, 400, "INVALID_FORMAT", "format must be json, csv, or xlsx")
	}
}

// Targets handles GET /v1/admin/export/targets
func (h *ExportHandler) Targets(c *gin.Context) {
	utils.Success(c, 200, "Export targets", h.exportService.TargetNames())
}

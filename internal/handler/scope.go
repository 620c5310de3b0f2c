package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/middleware"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// requireSalon returns the scoped salon id, writing a 403 when the request is
// in the aggregate view. Point reads and mutations always need one tenant.
func requireSalon(c *gin.Context) (string, bool) {
	sc := middleware.GetScope(c)
	if sc.Kind != scope.KindSalon {
		utils.Error(c, 403, "TENANT_REQUIRED", "This operation requires a salon scope")
		return "", false
	}
	return sc.SalonID, true
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// ScopeMiddleware resolves the effective tenant for every request from the
// session plus the optional salonId query parameter. A manager naming a
// foreign salon is refused here, before any handler runs.
func ScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		salonID := c.Query("salonId")
		if strings.Contains(salonID, "/") {
			utils.Error(c, 400, "INVALID_SALON_ID", "salonId must not contain '/'")
			c.Abort()
			return
		}
		resolved, err := scope.Resolve(GetSession(c), salonID)
		if err != nil {
			utils.Error(c, 403, "TENANT_FORBIDDEN", "Not authorized for the requested salon")
			c.Abort()
			return
		}
		c.Set("scope", resolved)
		c.Next()
	}
}

// GetScope returns the resolved tenant scope from context.
func GetScope(c *gin.Context) scope.Scope {
	v, _ := c.Get("scope")
	if v == nil {
		return scope.Scope{}
	}
	return v.(scope.Scope)
}

// RequireWritableScope refuses mutations issued from the aggregate
// (all-tenants) view.
func RequireWritableScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetScope(c).CanWrite() {
			utils.Error(c, 403, "AGGREGATE_WRITE", "Writes are not allowed in the aggregate view")
			c.Abort()
			return
		}
		c.Next()
	}
}

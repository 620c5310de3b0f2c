package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// JWTMiddleware authenticates requests and places the actor session into the
// request context.
type JWTMiddleware struct {
	rateLimiter *InvalidAuthRateLimiter
}

// NewJWTMiddleware constructs a new JWTMiddleware.
func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{rateLimiter: NewInvalidAuthRateLimiter()}
}

// Handle returns a Gin middleware that enforces authentication. The token is
// read from the Authorization header, or from the `token` query parameter for
// EventSource connections, which cannot set headers.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				m.handleAuthError(c, "UNAUTHORIZED", "Invalid authorization header")
				return
			}
			token = parts[1]
		} else if qt := c.Query("token"); qt != "" {
			token = qt
		}
		if token == "" {
			m.handleAuthError(c, "UNAUTHORIZED", "Missing authorization")
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			m.handleAuthError(c, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("session", scope.Session{
			ActorID: claims.ActorID,
			Email:   claims.Email,
			Role:    scope.Role(claims.Role),
			SalonID: claims.SalonID,
		})
		c.Next()
	}
}

func (m *JWTMiddleware) handleAuthError(c *gin.Context, code, message string) {
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}
	utils.Error(c, 401, code, message)
	c.Abort()
}

// GetSession returns the authenticated session from context. Zero value when
// unauthenticated.
func GetSession(c *gin.Context) scope.Session {
	v, _ := c.Get("session")
	if v == nil {
		return scope.Session{}
	}
	return v.(scope.Session)
}

// RequireSuperAdmin restricts a route to the platform super-admin.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c).Role != scope.RoleSuperAdmin {
			utils.Error(c, 403, "FORBIDDEN", "Super-admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

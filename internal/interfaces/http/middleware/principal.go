package middleware

import (
	"context"
	"net/http"

	"github.com/delivery/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key for the resolved principal
const PrincipalKey = "principal"

// PrincipalResolver resolves a user ID into a principal with a tagged role
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (identity.Principal, error)
}

// PrincipalConfig holds configuration for the principal middleware
type PrincipalConfig struct {
	// Resolver is required for loading the role profile
	Resolver PrincipalResolver
	// Logger for middleware logging
	Logger *zap.Logger
}

// PrincipalMiddleware resolves the authenticated user into a principal
// once per request. Requests without claims get an anonymous principal,
// so this runs after either JWT middleware variant
func PrincipalMiddleware(cfg PrincipalConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := GetJWTUserID(c)
		if userIDStr == "" {
			c.Set(PrincipalKey, identity.NewAnonymousPrincipal())
			c.Next()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.Set(PrincipalKey, identity.NewAnonymousPrincipal())
			c.Next()
			return
		}

		principal, err := cfg.Resolver.ResolvePrincipal(c.Request.Context(), userID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to resolve principal",
					zap.String("user_id", userIDStr),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to resolve request identity",
				},
			})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// GetPrincipal retrieves the resolved principal from gin.Context.
// Returns an anonymous principal when the middleware did not run
func GetPrincipal(c *gin.Context) identity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.NewAnonymousPrincipal()
}

// RequireRole creates middleware that requires one of the listed roles.
// A superuser passes every role check
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)

		if !principal.HasProfile() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if principal.IsSuperuser() {
			c.Next()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// RequireStaff requires an employee or superuser principal
func RequireStaff() gin.HandlerFunc {
	return RequireRole(identity.RoleEmployee)
}

// RequireClient requires a client principal
func RequireClient() gin.HandlerFunc {
	return RequireRole(identity.RoleClient)
}

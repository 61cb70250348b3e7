package middleware

import (
	"net/http"
	"strings"

	"gymtrack_backend/internal/auth"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// on the gin context and the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles limits a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireStaff is shorthand for admin-or-trainer routes.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin, models.UserRoleTrainer)
}

// CurrentUserID returns the authenticated caller's id.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// CurrentRole returns the authenticated caller's role.
func CurrentRole(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	if role, ok := v.(models.UserRole); ok {
		return role, true
	}
	if s, ok := v.(string); ok {
		return models.UserRole(s), true
	}
	return "", false
}

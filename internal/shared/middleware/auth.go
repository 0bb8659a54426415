package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recipebook-backend/internal/shared"
	"recipebook-backend/pkg/jwt"
)

const (
	ContextKeyIdentity = "identity"
	ContextKeyRole     = "role"
)

// RequireAuth rejects requests without a valid bearer token and stores
// the caller identity in the request context.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, role, ok := identityFromHeader(c, manager)
		if !ok {
			c.JSON(401, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is
// present and falls back to the anonymous identity otherwise. Reads
// that compute favorited/in-cart flags go through this path.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, role, ok := identityFromHeader(c, manager); ok {
			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyRole, role)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextKeyRole) != "admin" {
			c.JSON(403, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerIdentity returns the identity stored by the auth middleware,
// or the anonymous identity when none was set.
func CallerIdentity(c *gin.Context) shared.Identity {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(shared.Identity); ok {
			return identity
		}
	}
	return shared.Anonymous()
}

func identityFromHeader(c *gin.Context, manager *jwt.Manager) (shared.Identity, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return shared.Anonymous(), "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return shared.Anonymous(), "", false
	}

	claims, err := manager.ValidateToken(parts[1])
	if err != nil {
		return shared.Anonymous(), "", false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return shared.Anonymous(), "", false
	}

	return shared.Authenticated(userID), claims.Role, true
}

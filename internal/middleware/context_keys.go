package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clubops/clubledger/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context. Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

const rolesKey = contextKey("roles")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetRolesFromContext retrieves the authenticated user's roles from the Gin
// context.
func GetRolesFromContext(c *gin.Context) ([]domain.Role, bool) {
	rolesVal := c.Request.Context().Value(rolesKey)
	if rolesVal == nil {
		return nil, false
	}
	roles, ok := rolesVal.([]domain.Role)
	if !ok {
		return nil, false
	}
	return roles, true
}

package middleware

import (
	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// DefaultUserID attributes writes when the caller does not identify itself.
const DefaultUserID = "system"

// RequestUserMiddleware resolves the acting user for audit fields from the
// X-User-ID header. Authentication is handled upstream of this service; the
// header is trusted as-is.
func RequestUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = DefaultUserID
		}
		c.Set(string(userIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID set by RequestUserMiddleware.
func GetUserIDFromContext(c *gin.Context) string {
	if userID, ok := c.Get(string(userIDKey)); ok {
		if s, ok := userID.(string); ok && s != "" {
			return s
		}
	}
	return DefaultUserID
}

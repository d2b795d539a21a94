package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pinkauto/internal/types"
)

// RiderIDKey is the gin context key the auth middleware sets.
const RiderIDKey = "rider_id"

// TokenParser validates a session token and returns the rider it names.
type TokenParser interface {
	ParseToken(token string) (types.ID, error)
}

// Auth requires a valid bearer token and stores the rider ID in the
// request context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		riderID, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(RiderIDKey, riderID)
		c.Next()
	}
}

// RiderID reads the authenticated rider from the gin context.
func RiderID(c *gin.Context) types.ID {
	if v, ok := c.Get(RiderIDKey); ok {
		if id, ok := v.(types.ID); ok {
			return id
		}
	}
	return ""
}

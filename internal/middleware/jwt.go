package middleware

import (
	"lamp_catalog/internal/access" // Role lookup and permission predicates
	"lamp_catalog/internal/utils"  // JWT utility functions
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// principalKey is the gin context key holding the request's access.Principal
const principalKey = "principal"

// bearerToken extracts the token of an "Authorization: Bearer" header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// JWTAuthMiddleware validates JWT tokens and resolves the caller's role
func JWTAuthMiddleware(secret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID)                         // Store userID in context
		c.Set(principalKey, access.Resolve(db, claims.UserID)) // Store principal in context
		c.Next()                                               // Proceed to the next handler
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is sent and
// treats the request as anonymous otherwise
func OptionalAuthMiddleware(secret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := access.Anonymous
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := utils.ParseJWT(tokenStr, secret); err == nil {
				c.Set("userID", claims.UserID)
				principal = access.Resolve(db, claims.UserID)
			}
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the caller stored by the auth middlewares
func Principal(c *gin.Context) access.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(access.Principal); ok {
			return p
		}
	}
	return access.Anonymous
}

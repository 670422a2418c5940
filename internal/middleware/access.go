package middleware

import (
	"lamp_catalog/internal/access" // Permission predicates
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RequireAction lets the request through only if the caller may perform action.
// Anonymous callers get 401 so clients can log in; authenticated ones get 403.
func RequireAction(action access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c) // Caller resolved by the auth middleware
		if access.Allowed(p, action) {
			c.Next() // Permitted, proceed to the next handler
			return
		}
		if !p.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": p.UserID, // Caller
			"role":    p.Role,   // Caller's role
			"action":  action,   // Denied action
			"path":    c.FullPath(),
		}).Warn("Permission denied")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	}
}

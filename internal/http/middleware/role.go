package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles limits a route to token holders with one of allowedRoles.
// Callers without a token are the unscoped system caller and pass through;
// it must run after AgencyScope.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := c.Get(scopeKey); !ok {
			c.Next()
			return
		}
		role := strings.ToLower(strings.TrimSpace(GetScope(c).Role))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not allowed"})
			return
		}
		c.Next()
	}
}

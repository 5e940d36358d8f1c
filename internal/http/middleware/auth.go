package middleware

import (
	"net/http"
	"strings"

	"ridemarket/internal/auth"
	"ridemarket/internal/domain"

	"github.com/gin-gonic/gin"
)

const scopeKey = "scope"

// AgencyScope reads an optional bearer token. Without one the caller is
// unscoped; a token that fails verification is rejected with 401. With no
// secret configured every caller is unscoped.
func AgencyScope(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := strings.TrimSpace(c.GetHeader("Authorization"))
		if h == "" || len(secret) == 0 {
			c.Next()
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		claims, err := auth.ParseValidate(secret, strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(scopeKey, claims.Scope())
		c.Next()
	}
}

// GetScope returns the caller scope set by AgencyScope; zero when absent.
func GetScope(c *gin.Context) domain.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if s, ok := v.(domain.Scope); ok {
			return s
		}
	}
	return domain.Scope{}
}

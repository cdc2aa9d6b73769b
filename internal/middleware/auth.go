package middleware

import (
	"net/http"
	"strings"

	"campushub/internal/pkg"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware validates the bearer token and cross-checks it against the
// token store, so a login elsewhere invalidates older sessions.
func AuthMiddleware(tokens service.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		stored, err := tokens.Get(claims.UserID)
		if err != nil || stored != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "session is no longer active"})
			c.Abort()
			return
		}

		if err := tokens.Extend(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

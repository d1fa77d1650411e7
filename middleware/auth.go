package middleware

import (
	"net/http"
	"strings"

	"theray/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// account id ("userID") and role ("role") on the context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			zap.L().Debug("Rejected token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}
		if claims.Role == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Token carries no role")
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"theray/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the authenticated role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString("role")]; !ok {
			utils.JSONError(c, http.StatusForbidden, "AccessDenied", "This action is not available for your role")
			return
		}
		c.Next()
	}
}

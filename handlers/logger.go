package handlers

import (
	"theray/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the
// global one, tagged with the request path and caller.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if l, exists := c.Get("logger"); exists {
		if ctxLogger, ok := l.(*zap.Logger); ok {
			logger = ctxLogger
		}
	}
	return logger.With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("userID", c.GetString("userID")),
	)
}

package handlers

import (
	"net/http"

	"theray/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest dependency snapshot from the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}

	state := "ok"
	if !healthy {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    state,
		"message":   "Hi, I'm Theray",
		"mongo":     status.Mongo,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}

package handlers

import (
	"net/http"

	"govconnect/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency check of the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Mongo {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{
		"status":     state,
		"mongo":      status.Mongo,
		"redis":      status.Redis,
		"checked_at": status.CheckedAt,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptotron-backend/config"
)

// Health reports service liveness and database reachability.
func Health(c *gin.Context) {
	dbStatus := "ok"
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "unreachable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   "up",
		"database": dbStatus,
	})
}

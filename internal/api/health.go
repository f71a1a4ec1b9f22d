package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lumi",
		"version": apiVersion,
	})
}

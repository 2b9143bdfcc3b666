package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/internal/middleware"
	"github.com/pageza/healthara/backend/internal/session"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Healthara API is running",
		"version": "v1.0.0",
	})
}

// requireSession fetches the session set by SessionAuth, answering 401 when absent
func requireSession(c *gin.Context) (*session.Session, bool) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return s, true
}

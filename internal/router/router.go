package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/config"
	"github.com/pageza/healthara/backend/internal/api"
	"github.com/pageza/healthara/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps api.Dependencies) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Liveness for container probes
	router.GET("/health", api.HealthCheck)

	api.RegisterRoutes(router.Group("/api/v1"), deps)

	return router
}

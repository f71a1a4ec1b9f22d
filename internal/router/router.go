package router

import (
	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/config"
	"github.com/lumi-diary/lumi/backend/internal/api"
	"github.com/lumi-diary/lumi/backend/internal/middleware"
)

// SetupRouter builds the engine with the global middleware chain, the static
// file server and every API route.
func SetupRouter(cfg *config.Config, deps api.Dependencies) *gin.Engine {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}

	api.SetupAPI(router, deps)
	return router
}
